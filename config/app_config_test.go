package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
store: pebble
http_addr: ":9090"
genesis:
  - id: alice
    tokens: "100000000"
  - id: bob
    tokens: "340282366920938463463374607431768211455"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorePebble, c.STORE)
	assert.Equal(t, ":9090", c.HTTP_ADDR)
	require.Len(t, c.GENESIS, 2)

	allocs, err := c.GenesisAllocations()
	require.NoError(t, err)
	assert.Equal(t, "alice", allocs[0].ID)
	assert.Equal(t, "100000000", allocs[0].Tokens.String())
	assert.Equal(t, "340282366920938463463374607431768211455", allocs[1].Tokens.String())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_STORE", "pebble")
	t.Setenv("LEDGER_HTTP_ADDR", "")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StorePebble, c.STORE)
	assert.Equal(t, "", c.HTTP_ADDR)
}

func TestInvalidConfigs(t *testing.T) {
	cases := map[string]string{
		"unknown store":   "store: leveldb\n",
		"bad tokens":      "genesis:\n  - id: alice\n    tokens: lots\n",
		"too many tokens": "genesis:\n  - id: alice\n    tokens: \"340282366920938463463374607431768211456\"\n",
		"duplicate":       "genesis:\n  - id: alice\n  - id: alice\n",
		"missing id":      "genesis:\n  - tokens: \"1\"\n",
		"not yaml":        "store: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
