package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/lmx/lang"
)

func TestRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		return path
	}

	program := write("prog.lmx", "#if\n<greeting>, <name>")
	defs := write("vars.defs", "greeting = Hello\nname = Ada")
	output := filepath.Join(dir, "out.txt")

	exit := func(code int) { t.Errorf("unexpected exit(%d)", code) }

	t.Run("expand", func(t *testing.T) {
		err := Run(context.Background(), exit,
			"-p", program, "-d", defs, "-o", output, "--log-level=error")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if data, _ := os.ReadFile(output); string(data) != "Hello, Ada\n" {
			t.Errorf("output = %q", data)
		}
	})

	t.Run("config file", func(t *testing.T) {
		config := configPath(baseConfig + ".yaml")
		if err := os.WriteFile(config, []byte("strict: true\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		t.Cleanup(func() { os.Remove(config) })

		err := Run(context.Background(), exit,
			"expand", "-p", program, "-d", defs, "-o", output, "--log-level=error")
		if !errors.Is(err, lang.ErrMalformedDirective) {
			t.Errorf("err = %v, want %v", err, lang.ErrMalformedDirective)
		}
	})

	t.Run("init", func(t *testing.T) {
		if err := Run(context.Background(), exit, "init", "--log-level=warn"); err != nil {
			t.Fatalf("Run: %v", err)
		}

		data, err := os.ReadFile(configPath(baseConfig))
		if err != nil {
			t.Fatalf("read config: %v", err)
		}

		table, err := lang.ParseDefinitions(string(data))
		if err != nil {
			t.Fatalf("config does not parse: %v", err)
		}

		if got := table["log-level"].String(); got != "warn" {
			t.Errorf("log-level = %q, want warn", got)
		}
	})
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		caller bool
		pretty bool
	}{
		{
			name:   "assigned",
			args:   []string{"--log-level=debug", "--log-format=json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "separate values",
			args:   []string{"expand", "--log-level", "warn", "--log-format", "text"},
			level:  "warn",
			format: "text",
			pretty: true,
		},
		{
			name:   "booleans",
			args:   []string{"--log-caller", "--no-log-pretty"},
			caller: true,
		},
		{
			name:   "assigned booleans",
			args:   []string{"--log-caller=false", "--log-pretty=false", "--no-log-caller=false"},
			caller: true,
		},
		{
			name:   "unrelated flags",
			args:   []string{"-p", "--log", "--strict"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Caller != tt.caller || f.Pretty != tt.pretty {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}
