package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/errors"
	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(automaton.ResetPolicies)
	t.Cleanup(observability.Reset)

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNew(t *testing.T) {
	c := New(&bytes.Buffer{}, LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	c.SetLogLevel(LogInfo)
	if c.Logger.GetLevel() != log.InfoLevel {
		t.Errorf("SetLogLevel() level = %v, want info", c.Logger.GetLevel())
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "collapse",
			args: []string{"rewrite", "a//b", "x///y"},
			want: []string{`"a/b"`, `"x/y"`},
		},
		{
			name: "drop parent",
			args: []string{"rewrite", "-t", "drop-parent", "a/b/c", "/usr/lib"},
			want: []string{`"a/b/c"`, `"b/c"`, `"/lib"`},
		},
		{
			name: "custom separator",
			args: []string{"rewrite", "--sep", `\`, `a\\b`},
			want: []string{`"a\\b"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %s:\n%s", want, out)
				}
			}
		})
	}
}

func TestRewriteLimit(t *testing.T) {
	out, err := execute(t, "rewrite", "-t", "drop-parent", "--limit", "1", "a/b")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "more than 1 outputs") {
		t.Errorf("output missing limit warning:\n%s", out)
	}
}

func TestRewriteErrors(t *testing.T) {
	if _, err := execute(t, "rewrite", "-t", "reverse", "a"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown transducer error = %v, want INVALID_INPUT", err)
	}
	if _, err := execute(t, "rewrite", "--sep", "//", "a"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("long separator error = %v, want INVALID_INPUT", err)
	}
	if _, err := execute(t, "rewrite"); err == nil {
		t.Error("rewrite without arguments should fail")
	}
}

func TestDot(t *testing.T) {
	out, err := execute(t, "dot", "-t", "collapse")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph Transducer {") || !strings.Contains(out, `/ => eps`) {
		t.Errorf("dot output:\n%s", out)
	}

	out, err = execute(t, "dot", "-i", "a//b", "-i", "c")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph Automaton {") {
		t.Errorf("dot -i output:\n%s", out)
	}
}

func TestDotToFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"drop.dot", "drop.svg"} {
		path := filepath.Join(dir, name)
		out, err := execute(t, "dot", "-t", "drop-parent", "-o", path)
		if err != nil {
			t.Fatalf("Execute(%s) error: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output does not mention %s:\n%s", path, out)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "digraph Transducer"
		if filepath.Ext(name) == ".svg" {
			want = "<svg"
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s missing %q", name, want)
		}
	}

	_, err := execute(t, "dot", "-o", filepath.Join(dir, "drop.png"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("png output error = %v, want UNSUPPORTED", err)
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstool.toml")
	data := "[automaton]\nminimization = \"brzozowski\"\nminimize_always = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", path, "rewrite", "a"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if automaton.CurrentMinimization() != automaton.MinimizeBrzozowski || !automaton.MinimizeAlways() {
		t.Error("config file policies were not applied")
	}
}

func TestConfigFlagErrors(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "rewrite", "a")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[automaton]\nminimization = \"fast\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = execute(t, "--config", path, "rewrite", "a")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program name")
	}
}

func TestTransducerNames(t *testing.T) {
	got := strings.Join(transducerNames(), ",")
	if got != "collapse,drop-parent" {
		t.Errorf("transducerNames() = %s", got)
	}
}

func TestParseSep(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"/", '/', false},
		{"é", 'é', false},
		{"", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		got, err := parseSep(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSep(%q) = %q, %v", tt.in, got, err)
		}
	}
}
