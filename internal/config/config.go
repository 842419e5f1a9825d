package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	ConfigFileName = "config.toml"
	DBFileName     = "tick.db"
	appDirName     = "tick"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	AddSub  string `toml:"add_subtask"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	MoveUp  string `toml:"move_up"`
	MoveDn  string `toml:"move_down"`
	Toggle  string `toml:"toggle"`
	Timer   string `toml:"timer"`
	Delete  string `toml:"delete"`
	Search  string `toml:"search"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	DataDir      string `toml:"data_dir"`
	DefaultScope string `toml:"default_scope"`
	Theme        string `toml:"theme"`
	Keys         Keymap `toml:"keys"`
}

// LoadOrCreate reads the config file, writing one with defaults on first
// run. A missing or partial file falls back to defaults per field.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DataDir()
	}
	return cfg, nil
}

// Path returns the config file location under the XDG config directory
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ConfigFileName
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDirName, ConfigFileName)
}

// DataDir returns the default data directory under XDG data home
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, appDirName)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DataDir:      DataDir(),
		DefaultScope: "inbox",
		Theme:        "dark",
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			AddSub:  "A",
			Up:      "k",
			Down:    "j",
			MoveUp:  "K",
			MoveDn:  "J",
			Toggle:  " ",
			Timer:   "s",
			Delete:  "d",
			Search:  "/",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
