package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/arcanaland/tirage/internal/deck"
)

const (
	defaultDeck                 = deck.Marseille
	defaultMaxConcurrentFetches = deck.DefaultMaxConcurrentFetches
	defaultMaxDraw              = 10
)

// Config represents the application configuration
type Config struct {
	DefaultDeck          string      `toml:"default_deck"`
	DataDir              string      `toml:"data_dir"`
	BaseURL              string      `toml:"base_url"`
	MaxConcurrentFetches int         `toml:"max_concurrent_fetches"`
	MaxDraw              int         `toml:"max_draw"`
	RequestsPerSecond    float64     `toml:"requests_per_second"`
	Decks                []DeckEntry `toml:"decks,omitempty"`
}

// DeckEntry registers an extra deck
type DeckEntry struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Manifest string `toml:"manifest"`
	Folder   string `toml:"folder"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		DefaultDeck:          string(defaultDeck),
		MaxConcurrentFetches: defaultMaxConcurrentFetches,
		MaxDraw:              defaultMaxDraw,
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDefaultDataDir returns the directory decks are read from by default
func GetDefaultDataDir() string {
	return filepath.Join(GetXDGDataHome(), "tirage")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "tirage", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults when
// missing, then applies environment overrides (a .env file in the
// working directory is read first).
func LoadConfig() (*Config, error) {
	config, err := loadFile(GetConfigFilePath())
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	applyEnv(config)

	return config, nil
}

// loadFile decodes the config at path, creating a default one if absent
func loadFile(configPath string) (*Config, error) {
	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// applyEnv overrides file values with TIRAGE_* environment variables
func applyEnv(config *Config) {
	if v := os.Getenv("TIRAGE_DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("TIRAGE_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := os.Getenv("TIRAGE_DEFAULT_DECK"); v != "" {
		config.DefaultDeck = v
	}
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()
	if err := writeFile(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// writeFile encodes config as TOML at path
func writeFile(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetDataDir returns the directory decks are read from
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return GetDefaultDataDir()
}

// Registry returns the built-in decks plus the ones declared in the config
func (c *Config) Registry() (*deck.Registry, error) {
	r := deck.DefaultRegistry()
	for _, d := range c.Decks {
		def := deck.Definition{
			ID:       deck.ID(d.ID),
			Name:     d.Name,
			Manifest: d.Manifest,
			Folder:   d.Folder,
		}
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("invalid deck in config: %w", err)
		}
	}
	return r, nil
}

// Source returns the resource source the config points at
func (c *Config) Source() (deck.Source, error) {
	if c.BaseURL != "" {
		return deck.NewHTTPSource(c.BaseURL, c.RequestsPerSecond)
	}
	return deck.NewDirSource(c.GetDataDir()), nil
}

// Loader builds the deck loader described by the config
func (c *Config) Loader(opts ...deck.AssemblerOption) (*deck.Loader, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}

	source, err := c.Source()
	if err != nil {
		return nil, err
	}

	opts = append([]deck.AssemblerOption{deck.WithMaxConcurrentFetches(c.MaxConcurrentFetches)}, opts...)
	return deck.NewLoader(registry, source, opts...), nil
}

// GetDefaultDeck returns the default deck id from config
func GetDefaultDeck() (deck.ID, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return deck.ID(config.DefaultDeck), nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(id deck.ID) error {
	configPath := GetConfigFilePath()

	// Environment overrides are not persisted
	config, err := loadFile(configPath)
	if err != nil {
		return err
	}

	config.DefaultDeck = string(id)

	return writeFile(configPath, config)
}
