package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
	"gopkg.in/yaml.v2"
)

const (
	StoreMemory = "memory"
	StorePebble = "pebble"
)

// This is the global app config for the ledger.
type AppConfig struct {
	// Which world state backend to use, "memory" or "pebble".
	STORE string
	// Accounts created and funded by the genesis block. Empty means the
	// chain starts without blocks.
	GENESIS []GenesisAccount
	// Address the explorer HTTP API listens on, empty to disable it.
	HTTP_ADDR string
}

type GenesisAccount struct {
	ID string
	// Decimal token amount, up to 2^128 - 1.
	TOKENS string
}

func Default() AppConfig {
	return AppConfig{
		STORE:     StoreMemory,
		HTTP_ADDR: "localhost:8080",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (AppConfig, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	c.loadEnv()
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func (c *AppConfig) loadEnv() {
	if store := os.Getenv("LEDGER_STORE"); store != "" {
		c.STORE = store
	}
	if addr, ok := os.LookupEnv("LEDGER_HTTP_ADDR"); ok {
		c.HTTP_ADDR = addr
	}
}

func (c AppConfig) Validate() error {
	switch c.STORE {
	case StoreMemory, StorePebble:
	default:
		return fmt.Errorf("unknown store %q, want %q or %q", c.STORE, StoreMemory, StorePebble)
	}
	_, err := c.GenesisAllocations()
	return err
}

// GenesisAllocations converts the configured genesis accounts.
func (c AppConfig) GenesisAllocations() ([]utils.GenesisAllocation, error) {
	allocs := make([]utils.GenesisAllocation, 0, len(c.GENESIS))
	seen := make(map[string]bool, len(c.GENESIS))
	for _, g := range c.GENESIS {
		if g.ID == "" {
			return nil, errors.New("genesis account without id")
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("duplicate genesis account %q", g.ID)
		}
		seen[g.ID] = true
		tokens := model.NewUint128(0)
		if g.TOKENS != "" {
			var err error
			if tokens, err = model.ParseUint128(g.TOKENS); err != nil {
				return nil, fmt.Errorf("genesis account %q: %w", g.ID, err)
			}
		}
		allocs = append(allocs, utils.GenesisAllocation{ID: g.ID, Tokens: tokens})
	}
	return allocs, nil
}
