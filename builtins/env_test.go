package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbragg-spear/hostsh/core/proc"
)

func procWithEnv(args ...string) (*proc.Proc, *bytes.Buffer) {
	var out bytes.Buffer
	return &proc.Proc{
		Args:   args,
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: &out,
		Env:    proc.NewEnv(),
	}, &out
}

func TestEnvSorted(t *testing.T) {
	p, out := procWithEnv("env")
	p.Env.Setenv("ZED", "26")
	p.Env.Setenv("ALPHA", "1")

	require.Equal(t, 0, Env(p))
	assert.Equal(t, "ALPHA=1\nZED=26\n", out.String())
}

func TestExportSetsVariables(t *testing.T) {
	p, _ := procWithEnv("export", "NAME=value", "PATH=/bin:/usr/bin")

	require.Equal(t, 0, Export(p))
	assert.Equal(t, "value", p.Env.Getenv("NAME"))
	assert.Equal(t, "/bin:/usr/bin", p.Env.Getenv("PATH"))
}

func TestExportValueKeepsEquals(t *testing.T) {
	p, _ := procWithEnv("export", "EXPR=a=b")

	require.Equal(t, 0, Export(p))
	assert.Equal(t, "a=b", p.Env.Getenv("EXPR"))
}

func TestExportRejectsBareWord(t *testing.T) {
	p, out := procWithEnv("export", "NOEQUALS")

	assert.Equal(t, 1, Export(p))
	assert.Contains(t, out.String(), "not a valid identifier")
}

func TestExportNoArgsListsEnv(t *testing.T) {
	p, out := procWithEnv("export")
	p.Env.Setenv("ONLY", "one")

	require.Equal(t, 0, Export(p))
	assert.Equal(t, "ONLY=one\n", out.String())
}
