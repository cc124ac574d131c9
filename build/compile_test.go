package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkc/common"
	"mkc/report"
)

const printTrace = `
source = "print.mk"

[[exit]]
line = 1
kind = "int"
text = "42"

[[exit]]
line = 1
kind = "print"

[[exit]]
line = 2
kind = "end-program"
`

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestBuildToStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "print.mkt", printTrace)

	var out bytes.Buffer
	require.NoError(t, Build(context.Background(), Options{TracePath: path}, &out))

	assert.Contains(t, out.String(), "define i32 @main() nounwind {\n")
	assert.Contains(t, out.String(), "store i32 42, i32* %1\n")
	assert.Contains(t, out.String(), "@sysvar_printint, i32 0, i32 0), i32 %2)")
}

func TestBuildToFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "print.mkt", printTrace)
	writeFile(t, dir, common.ConfigFileName, "[runtime]\nprintInt = \"@fmt_int\"\n")
	outPath := filepath.Join(dir, "print.ll")

	var stdout bytes.Buffer
	require.NoError(t, Build(context.Background(), Options{TracePath: path, OutputPath: outPath}, &stdout))
	assert.Empty(t, stdout.String())

	program, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(program), "@fmt_int = constant [4 x i8]")
	assert.NotContains(t, string(program), "@sysvar_printint")
}

func TestBuildExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "print.mkt", printTrace)
	cfg := writeFile(t, dir, "other.toml", "[runtime]\nbogus = \"@x\"\n")

	var out bytes.Buffer
	err := Build(context.Background(), Options{TracePath: path, ConfigPath: cfg}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestCompileErrorsPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.mkt", `
source = "bad.mk"

[[exit]]
line = 7
kind = "name"
name = "nope"
`)

	err := Build(context.Background(), Options{TracePath: path}, &bytes.Buffer{})
	require.Error(t, err)

	var cerr *report.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, report.UnknownIdentifier, cerr.Kind)
	assert.Equal(t, "Compilation error at line 7 - using non-existing variable nope in bad.mk", err.Error())
}

func TestIncompleteTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "short.mkt", "[[exit]]\nline = 1\nkind = \"int\"\ntext = \"1\"\n")

	err := Build(context.Background(), Options{TracePath: path}, &bytes.Buffer{})
	require.Error(t, err)
	_, ok := report.KindOf(err)
	assert.False(t, ok)

	err = Build(context.Background(), Options{TracePath: filepath.Join(dir, "missing.mkt")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRepeatedConditionIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cond.mkt", `
[[exit]]
line = 1
kind = "begin-condition"

[[exit]]
line = 1
kind = "begin-condition"

[[exit]]
line = 2
kind = "end-program"
`)

	var out bytes.Buffer
	err := Build(context.Background(), Options{TracePath: path}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification no. 2")
	assert.Empty(t, out.String())
}
