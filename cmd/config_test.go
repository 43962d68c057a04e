package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/repl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
prompt: ">> "
history_file: /tmp/yascl_history
max_stack_height: 64
print_results: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ">> ", cfg.Prompt)
	assert.Equal(t, "/tmp/yascl_history", cfg.HistoryFile)
	require.NotNil(t, cfg.MaxStackHeight)
	assert.Equal(t, 64, *cfg.MaxStackHeight)
	require.NotNil(t, cfg.PrintResults)
	assert.False(t, *cfg.PrintResults)
	assert.Nil(t, cfg.Greeting)

	rcfg := repl.DefaultConfig()
	cfg.ApplyRepl(rcfg)
	assert.Equal(t, ">> ", rcfg.Prompt)
	assert.Equal(t, "/tmp/yascl_history", rcfg.HistoryFile)
	assert.False(t, rcfg.PrintResults)
	assert.True(t, rcfg.Greeting)
	assert.Len(t, rcfg.Env, 1)

	env := lang.NewEnv()
	for _, fn := range cfg.EnvConfig() {
		require.NoError(t, fn(env))
	}
	assert.Equal(t, 64, env.Runtime.Stack.MaxHeight)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.Empty(t, cfg.EnvConfig())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "unknown.yaml", "colour: blue\n"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "config: parse")
		assert.Contains(t, err.Error(), "colour")
	}

	_, err = LoadConfig(writeFile(t, "negative.yaml", "max_stack_height: -1\n"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "max_stack_height must be positive: -1")
	}
	_, err = LoadConfig(writeFile(t, "zero.yaml", "max_stack_height: 0\n"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "max_stack_height must be positive: 0")
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestRunTestFile(t *testing.T) {
	path := writeFile(t, "example_test.yascl", `
mut count = 0
let bump = fun() { count = count + 1 }
test("fresh environment", fun() {
	bump()
	assert_eq(1, count)
})
test("fresh again", fun() {
	bump()
	assert_eq(1, count)
})
test("broken", fun() {
	assert(false, "nope")
})
`)
	var buf bytes.Buffer
	ok, err := runTestFile(&buf, path, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	out := buf.String()
	assert.Contains(t, out, "PASS example_test.yascl: fresh environment\n")
	assert.Contains(t, out, "PASS example_test.yascl: fresh again\n")
	assert.Contains(t, out, "FAIL example_test.yascl: broken\n")
	assert.Contains(t, out, "assertion failed: nope")
}

func TestRunTestFileLoadError(t *testing.T) {
	path := writeFile(t, "bad_test.yascl", "let x = \n")
	_, err := runTestFile(&bytes.Buffer{}, path, nil)
	assert.Error(t, err)
}

func TestRunReadSources(t *testing.T) {
	runExpression = true
	defer func() { runExpression = false }()
	names, sources, err := runReadSources([]string{"1 + 2", "len([])"})
	require.NoError(t, err)
	assert.Equal(t, []string{"expr1", "expr2"}, names)
	assert.Equal(t, []string{"1 + 2", "len([])"}, sources)

	runExpression = false
	path := writeFile(t, "prog.yascl", "let a = 1\n")
	names, sources, err = runReadSources([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, names)
	assert.Equal(t, []string{"let a = 1\n"}, sources)
}
