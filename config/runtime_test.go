package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrologue(t *testing.T) {
	exp := `declare i32 @printf(i8*, ...)
declare i32 @scanf(i8*, ...)
@sysvar_printint = constant [4 x i8] c"%d\0A\00"
@sysvar_printreal = constant [4 x i8] c"%f\0A\00"
@sysvar_scanint = constant [3 x i8] c"%d\00"
@sysvar_scanreal = constant [4 x i8] c"%lf\00"

`

	assert.Equal(t, exp, DefaultRuntime().Prologue())
}

func TestParseRuntimeOverrides(t *testing.T) {
	rt, err := ParseRuntime([]byte(`
[runtime]
printInt = "@fmt_int"
scanf = "@my_scanf"
`))
	require.NoError(t, err)

	exp := DefaultRuntime()
	exp.PrintInt = "@fmt_int"
	exp.Scanf = "@my_scanf"
	assert.Equal(t, exp, rt)
}

func TestParseRuntimeEmpty(t *testing.T) {
	rt, err := ParseRuntime(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRuntime(), rt)
}

func TestParseRuntimeRejectsUnknownKeys(t *testing.T) {
	_, err := ParseRuntime([]byte("[runtime]\nprintValue = \"@sysvar_printval\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printValue")

	_, err = ParseRuntime([]byte("[output]\npath = \"a.ll\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")

	_, err = ParseRuntime([]byte("runtime = 1\n"))
	assert.Error(t, err)
}

func TestParseRuntimeRejectsBadSymbols(t *testing.T) {
	_, err := ParseRuntime([]byte("[runtime]\nprintf = \"printf\"\n"))
	assert.Error(t, err)

	_, err = ParseRuntime([]byte("[runtime]\nprintf = \"@\"\n"))
	assert.Error(t, err)
}

func TestLoadRuntime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkc.toml")
	require.NoError(t, os.WriteFile(path, []byte("[runtime]\nprintReal = \"@pr\"\n"), 0o644))

	rt, err := LoadRuntime(path)
	require.NoError(t, err)
	assert.Equal(t, "@pr", rt.PrintReal)

	_, err = LoadRuntime(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
