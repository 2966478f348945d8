package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scoretree/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the scoretree command and returns its standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // no user config file
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "score.txt", "c4 4 | d4 4 |\n")
	out, err := run(t, "", "parse", "--ascii", path)
	require.NoError(t, err)
	expected := "SCORE\n" +
		"|-- BAR\n" +
		"|   `-- NOTE: c4 (1/4)\n" +
		"`-- BAR\n" +
		"    `-- NOTE: d4 (1/4)\n"
	assert.Equal(t, expected, out)
}

func TestParseStdin(t *testing.T) {
	out, err := run(t, "|: c4 4 :|", "parse", "--ascii")
	require.NoError(t, err)
	assert.Equal(t, "SCORE\n`-- REPEAT: 2x\n    `-- BAR\n        `-- NOTE: c4 (1/4)\n", out)
}

func TestParseMissingFile(t *testing.T) {
	_, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTempo(t *testing.T) {
	_, err := run(t, `\bpm 120`, "parse")
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrMissingTempo)
	assert.Contains(t, err.Error(), "line 1")

	out, err := run(t, `\bpm 120`, "parse", "--ascii", "--lenient-tempo")
	require.NoError(t, err)
	assert.Equal(t, "SCORE\n`-- TEMPO: 120 BPM\n", out)
}

func TestParseYAML(t *testing.T) {
	out, err := run(t, `\bpm 96 r8.`, "parse", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: SCORE")
	assert.Contains(t, out, "bpm: 96")
	assert.Contains(t, out, "duration: 3/16")
}

func TestParseColor(t *testing.T) {
	out, err := run(t, "mf c", "parse", "--ascii", "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "DYNAMIC")
	assert.Contains(t, out, ": c4 (1)")
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "c", "parse", "--format", "pdf")
	assert.Error(t, err)
	_, err = run(t, "c", "parse", "--trace", "verbose")
	assert.Error(t, err)
	_, err = run(t, "", "parse", "a.txt", "b.txt")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	out, err := run(t, "\\bpm 96\nc+", "tokens")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Token(COMMAND, 'bpm', line=1)", lines[0])
	assert.Equal(t, "Token(OCTAVE_UP, '+', line=2)", lines[3])
	assert.Equal(t, "Token(END, None, line=2)", lines[4])
}

func TestTemplates(t *testing.T) {
	out, err := run(t, "", "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "1. scale")
	assert.Contains(t, out, "Tree Example")
	assert.Equal(t, 4, strings.Count(out, "\n"))

	out, err = run(t, "", "template", "--ascii", "tree")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Tree Example\n\\bpm 120\n"))
	assert.Contains(t, out, "|-- TEMPO: 120 BPM\n")
	assert.Contains(t, out, "REPEAT: 2x")

	_, err = run(t, "", "template", "waltz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template")
}

func TestNotationAndVersion(t *testing.T) {
	out, err := run(t, "", "notation")
	require.NoError(t, err)
	assert.Contains(t, out, `\bpm`)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scoretree v"+Version)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.toml", `
trace_level = "info"
format = "yaml"
ascii = true
lenient_tempo = true
`)
	out, err := run(t, `\bpm 120`, "parse", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "bpm: 120")

	// flags override the config file
	out, err = run(t, `\bpm 120`, "parse", "--config", cfg, "--format", "tree")
	require.NoError(t, err)
	assert.Equal(t, "SCORE\n`-- TEMPO: 120 BPM\n", out)

	_, err = run(t, `\bpm 120`, "parse", "--config", cfg, "--lenient-tempo=false")
	assert.ErrorIs(t, err, parser.ErrMissingTempo)
}

func TestBadConfig(t *testing.T) {
	_, err := run(t, "c", "parse", "--config", writeFile(t, "bad.toml", `format = "pdf"`))
	assert.Error(t, err)
	_, err = run(t, "c", "parse", "--config", writeFile(t, "broken.toml", `format = `))
	assert.Error(t, err)
	_, err = run(t, "c", "parse", "--config", filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, FormatTree, cfg.Format)
	assert.False(t, cfg.LenientTempo)
}

func TestTraceLevel(t *testing.T) {
	tests := map[string]tracing.TraceLevel{
		"debug": tracing.LevelDebug,
		"Info":  tracing.LevelInfo,
		"error": tracing.LevelError,
		"":      tracing.LevelError,
	}
	for s, level := range tests {
		l, err := traceLevel(s)
		require.NoError(t, err)
		assert.Equal(t, level, l, "trace level %q", s)
	}
	_, err := traceLevel("loud")
	assert.Error(t, err)
}
