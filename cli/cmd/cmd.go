package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// stdout receives command output written to "-".
var stdout io.Writer = os.Stdout

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// SourceFiles reads a set of input files as one stream.
type SourceFiles interface {
	io.ReadCloser

	// Names returns the paths that were opened, in read order.
	// Standard input is reported as "-".
	Names() []string
}

type sourceFiles struct {
	names  []string
	files  []io.Reader
	closer []io.Closer
	stream io.Reader
}

func (s *sourceFiles) Names() []string { return s.names }

// Read implements io.Reader by reading from all source files in order,
// separating the contents of consecutive files with a newline.
func (s *sourceFiles) Read(p []byte) (int, error) {
	if s.stream == nil {
		readers := make([]io.Reader, 0, 2*len(s.files))

		for i, r := range s.files {
			if i > 0 {
				readers = append(readers, strings.NewReader("\n"))
			}

			readers = append(readers, r)
		}

		s.stream = io.MultiReader(readers...)
	}

	return s.stream.Read(p)
}

// Close closes every opened file. Standard input is left open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, c := range s.closer {
		errs = append(errs, c.Close())
	}

	s.closer = nil

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSourceFiles opens the given paths for reading as one stream.
//
// Paths are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader
// placed last so it reads after all regular files. An empty list yields
// nil and no error.
func openSourceFiles(paths []string) (SourceFiles, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, ok, err := openUniqueFile(path, seen)
		if err != nil {
			srcs.Close()

			return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
		}

		if !ok {
			continue
		}

		srcs.names = append(srcs.names, path)
		srcs.files = append(srcs.files, file)
		srcs.closer = append(srcs.closer, file)
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs.names = append(srcs.names, stdinSource)
		srcs.files = append(srcs.files, os.Stdin)
	}

	return &srcs, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates, which are
// reported with ok == false.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (file *os.File, ok bool, err error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, hasKey := makeFileKey(info); hasKey {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err = os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// openSource opens the file at path for reading, or standard input if path
// is "-". Closing the result leaves standard input open.
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("file", path)).Wrap(err)
	}

	return f, nil
}

// createFile creates or truncates the file at path for writing.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeOutput writes data to the file at path, or to w if path is "-".
// A file that fails to close after a successful write is reported.
func writeOutput(w io.Writer, path, data string) (err error) {
	if path != stdinSource {
		f, cerr := createFile(path)
		if cerr != nil {
			return ErrWriteOutput.With(slog.String("file", path)).Wrap(cerr)
		}

		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = ErrWriteOutput.With(slog.String("file", path)).Wrap(cerr)
			}
		}()

		w = f
	}

	if _, err := io.WriteString(w, data); err != nil {
		return ErrWriteOutput.With(slog.String("file", path)).Wrap(err)
	}

	return nil
}
