package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbragg-spear/hostsh/core/history"
	"github.com/mbragg-spear/hostsh/core/proc"
)

func TestHistory(t *testing.T) {
	buf := history.NewBuffer(10)
	buf.Add("ls -la")
	buf.Add("pwd")

	cases := goldenTestSuite{
		"listing": {[]string{"history"}},
	}

	cases.Run(t, History(buf))
}

func TestTypeResolvesBuiltin(t *testing.T) {
	registry := proc.NewRegistry()
	Install(registry)

	out, status := runBuiltin(Type(registry), "type", "echo")
	require.Equal(t, 0, status)
	assert.Equal(t, "echo is a shell builtin\n", out)
}

func TestTypeResolvesRegisteredPath(t *testing.T) {
	registry := proc.NewRegistry()
	registry.RegisterExternal("say", "/bin/echo")

	out, status := runBuiltin(Type(registry), "type", "say")
	require.Equal(t, 0, status)
	assert.Equal(t, "say is /bin/echo\n", out)
}

func TestTypeUnknownName(t *testing.T) {
	registry := proc.NewRegistry()

	out, status := runBuiltin(Type(registry), "type", "no-such-name-000")
	assert.Equal(t, 1, status)
	assert.Contains(t, out, "not found")
}

func TestHelpListsCommands(t *testing.T) {
	registry := proc.NewRegistry()
	Install(registry)

	out, status := runBuiltin(Help(registry), "help")
	require.Equal(t, 0, status)
	for _, name := range registry.Names() {
		assert.Contains(t, out, name)
	}
}
