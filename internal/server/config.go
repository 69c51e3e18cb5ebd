package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/studroom/studroom/internal/game"
)

// Config is the complete room configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address            string `hcl:"address,optional"`
	Port               int    `hcl:"port,optional"`
	LogLevel           string `hcl:"log_level,optional"`
	ActTimeoutSeconds  int    `hcl:"act_timeout_seconds,optional"`
	RevealWaitSeconds  int    `hcl:"reveal_wait_seconds,optional"`
	RetainedEventLimit int    `hcl:"retained_event_limit,optional"`
	DefaultBalance     int    `hcl:"default_balance,optional"`
}

// TableConfig defines one stud table.
type TableConfig struct {
	Name     string `hcl:"name,label"`
	Game     string `hcl:"game,optional"`
	Mixed    bool   `hcl:"mixed,optional"`
	SmallBet int    `hcl:"small_bet"`
	BigBet   int    `hcl:"big_bet,optional"`
	Ante     int    `hcl:"ante,optional"`
	BringIn  int    `hcl:"bring_in,optional"`
	BuyInMin int    `hcl:"buy_in_min,optional"`
	BuyInMax int    `hcl:"buy_in_max,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:            "localhost",
			Port:               8080,
			LogLevel:           "info",
			ActTimeoutSeconds:  15,
			RevealWaitSeconds:  5,
			RetainedEventLimit: 512,
			DefaultBalance:     10000,
		},
		Tables: []TableConfig{
			{
				Name:     "main",
				Game:     string(game.StudHi),
				SmallBet: 10,
				BigBet:   20,
				Ante:     1,
				BringIn:  3,
				BuyInMin: 200,
				BuyInMax: 2000,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.ActTimeoutSeconds == 0 {
		config.Server.ActTimeoutSeconds = 15
	}
	if config.Server.RevealWaitSeconds == 0 {
		config.Server.RevealWaitSeconds = 5
	}
	if config.Server.RetainedEventLimit == 0 {
		config.Server.RetainedEventLimit = 512
	}
	if config.Server.DefaultBalance == 0 {
		config.Server.DefaultBalance = 10000
	}

	for i := range config.Tables {
		t := &config.Tables[i]
		if t.Game == "" {
			t.Game = string(game.StudHi)
		}
		if t.BigBet == 0 {
			t.BigBet = t.SmallBet * 2
		}
		if t.Ante == 0 {
			t.Ante = t.SmallBet / 10
		}
		if t.BringIn == 0 {
			t.BringIn = t.SmallBet / 3
		}
		if t.BringIn == 0 {
			t.BringIn = 1
		}
		if t.BuyInMin == 0 {
			t.BuyInMin = t.BigBet * 10
		}
		if t.BuyInMax == 0 {
			t.BuyInMax = t.BigBet * 100
		}
	}

	return &config, nil
}

// Validate validates the room configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			return fmt.Errorf("duplicate table name %q", t.Name)
		}
		seen[t.Name] = true

		switch game.GameType(t.Game) {
		case game.StudHi, game.Razz, game.Stud8:
		default:
			return fmt.Errorf("table %s: unknown game %q", t.Name, t.Game)
		}
		if t.SmallBet <= 0 {
			return fmt.Errorf("table %s: small bet must be positive", t.Name)
		}
		if t.BigBet < t.SmallBet {
			return fmt.Errorf("table %s: big bet must be at least the small bet", t.Name)
		}
		if t.Ante < 0 {
			return fmt.Errorf("table %s: ante cannot be negative", t.Name)
		}
		if t.BringIn <= 0 || t.BringIn > t.SmallBet {
			return fmt.Errorf("table %s: bring-in must be positive and at most the small bet", t.Name)
		}
		if t.BuyInMin >= t.BuyInMax {
			return fmt.Errorf("table %s: buy-in minimum must be less than maximum", t.Name)
		}
		if t.BuyInMin <= t.Ante {
			return fmt.Errorf("table %s: buy-in minimum must cover the ante", t.Name)
		}
	}

	return nil
}

// Stakes converts a table's limits into the game representation.
func (t *TableConfig) Stakes() game.Stakes {
	return game.Stakes{
		SmallBet: t.SmallBet,
		BigBet:   t.BigBet,
		Ante:     t.Ante,
		BringIn:  t.BringIn,
	}
}

// ListenAddress returns the host:port the server binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
