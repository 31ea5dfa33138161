package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/lmx/log"
)

// definitionsCache stores parsed definitions keyed by the xxh3 hash of
// their source text. Entries are never mutated after parsing; callers
// receive clones.
var definitionsCache sync.Map

// cached is the parse result of one definitions source.
type cached struct {
	once  sync.Once
	table Table
	err   error
}

// sourceKey returns the cache key of a definitions source.
func sourceKey(src string) string {
	return strconv.FormatUint(xxh3.HashString(src), 36)
}

// parseDefinitionsCached parses src at most once per distinct source text
// and returns a private copy of the resulting table.
func parseDefinitionsCached(
	ctx context.Context,
	logger log.Logger,
	src string,
) (Table, error) {
	key := sourceKey(src)

	value, hit := definitionsCache.LoadOrStore(key, new(cached))
	entry := value.(*cached)

	logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", key),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.table, entry.err = ParseDefinitions(src)
		if entry.err != nil {
			entry.err = WrapError(entry.err).With(
				slog.Int("source_length", len(src)),
			)
		}
	})

	if entry.err != nil {
		return nil, entry.err
	}

	return entry.table.Clone(), nil
}

// ReadDefinitions reads definitions from r and parses them into a [Table].
// Identical sources are parsed only once per process.
func ReadDefinitions(ctx context.Context, r io.Reader) (Table, error) {
	src, err := readAll(r, "definitions")
	if err != nil {
		return nil, err
	}

	return parseDefinitionsCached(ctx, log.Logger{}, src)
}

// CacheLen returns the number of cached definitions sources.
func CacheLen() int {
	n := 0

	definitionsCache.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

// ClearCache removes all cached definitions.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	definitionsCache.Clear()
}

// readAll reads all of r through an asynchronous read-ahead buffer.
// A nil reader reads as empty.
func readAll(r io.Reader, source string) (string, error) {
	if r == nil {
		return "", nil
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", source))
	}

	return string(data), nil
}
