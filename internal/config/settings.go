package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Setting keys shared by cobra flags, the config file and FLAPPY_* env vars.
const (
	KeyLeaderboard = "leaderboard"
	KeyBackend     = "backend"
	KeyDifficulty  = "difficulty"
	KeyPresets     = "presets"
	KeySeed        = "seed"
	KeyLogLevel    = "log-level"
	KeyLogFile     = "log-file"
	KeyPlayer      = "player"
)

// Leaderboard backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Settings are the resolved application settings.
type Settings struct {
	Leaderboard string // Path of the leaderboard file or database
	Backend     string // BackendFile or BackendSQLite
	Difficulty  Difficulty
	Presets     string // Optional preset table override
	Seed        int64  // 0 = seed from the clock
	LogLevel    string
	LogFile     string // Where TUI runs send their log output
	Player      string // Default name offered on a new high score
}

// SetDefaults registers the default value of every setting.
func SetDefaults() {
	viper.SetDefault(KeyLeaderboard, "~/.flappy/highscores.txt")
	viper.SetDefault(KeyBackend, BackendFile)
	viper.SetDefault(KeyDifficulty, string(DifficultyNormal))
	viper.SetDefault(KeyPresets, "")
	viper.SetDefault(KeySeed, 0)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFile, "~/.flappy/flappy.log")
	viper.SetDefault(KeyPlayer, "Player")
}

// InitSettings reads the config file and FLAPPY_* environment variables.
// It uses cfgFile when given, otherwise looks for .flappy.yaml in the home
// directory and the working directory. A missing file is not an error.
func InitSettings(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: error getting home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flappy")
	}

	viper.SetEnvPrefix("FLAPPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: cannot read settings: %w", err)
		}
	}
	return nil
}

// Current resolves the settings from viper.
func Current() (Settings, error) {
	d, err := ParseDifficulty(viper.GetString(KeyDifficulty))
	if err != nil {
		return Settings{}, err
	}

	backend := strings.ToLower(viper.GetString(KeyBackend))
	if backend != BackendFile && backend != BackendSQLite {
		return Settings{}, fmt.Errorf("config: unknown leaderboard backend %q (want file or sqlite)", backend)
	}

	leaderboard, err := ExpandHome(viper.GetString(KeyLeaderboard))
	if err != nil {
		return Settings{}, err
	}
	logFile, err := ExpandHome(viper.GetString(KeyLogFile))
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Leaderboard: leaderboard,
		Backend:     backend,
		Difficulty:  d,
		Presets:     viper.GetString(KeyPresets),
		Seed:        viper.GetInt64(KeySeed),
		LogLevel:    viper.GetString(KeyLogLevel),
		LogFile:     logFile,
		Player:      viper.GetString(KeyPlayer),
	}, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
