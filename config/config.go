package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessGo/bots"
	"chessGo/rules"
)

var (
	cfgFile = "chessgo/config.json"
	logFile = "chessgo/chessgo.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type Config struct {
	PlayerColor  string `json:"player_color"`
	Bot          string `json:"bot"`
	ReplyDelayMS int    `json:"reply_delay_ms"`
	SafeRetreat  bool   `json:"safe_retreat"`
	Frontend     string `json:"frontend"`
	LogLevel     string `json:"log_level"`
	StartFEN     string `json:"start_fen"`
}

// InitConfig returns the defaults overlaid with the user's config file, if any.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads a config from an explicit path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.PlayerColor {
	case "white", "black":
	default:
		return &InvalidConfig{fmt.Sprintf("player_color must be white or black, got %q", c.PlayerColor)}
	}
	if _, err := bots.New(c.Bot, bots.Options{Log: zerolog.Nop()}); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.ReplyDelayMS < 0 {
		return &InvalidConfig{"reply_delay_ms must not be negative"}
	}
	switch c.Frontend {
	case "gui", "term":
	default:
		return &InvalidConfig{fmt.Sprintf("frontend must be gui or term, got %q", c.Frontend)}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("log_level: %v", err)}
	}
	if strings.TrimSpace(c.StartFEN) != "" {
		if _, err := rules.NewBoard(c.StartFEN); err != nil {
			return &InvalidConfig{err.Error()}
		}
	}
	return nil
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

// Level is the parsed log level; Validate has accepted it.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) Human() chess.Color {
	if c.PlayerColor == "black" {
		return chess.Black
	}
	return chess.White
}

func (c *Config) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// LogFile returns the path of the log file, creating its directory.
func LogFile() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
