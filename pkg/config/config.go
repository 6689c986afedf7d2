/*
Package config manages the TOML config of wordfix.

	[server]
	max_text_length = 5000
	debounce_ms = 300

	[analysis]
	base_url = "http://localhost:8000"
	endpoint = "/review"
	timeout_ms = 8000

	[dict]
	path = "dict.txt"
	words = ["kubectl"]

	[cli]
	color = true

A file that fails to parse as a whole is read section by section, so one bad
value does not throw away the rest. Values out of range fall back to defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/analysis"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Analysis AnalysisConfig `toml:"analysis"`
	Dict     DictConfig     `toml:"dict"`
	CLI      CliConfig      `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTextLength int `toml:"max_text_length"`
	DebounceMS    int `toml:"debounce_ms"`
}

// AnalysisConfig points at the analysis service.
type AnalysisConfig struct {
	BaseURL   string `toml:"base_url"`
	Endpoint  string `toml:"endpoint"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// DictConfig holds user dictionary options.
type DictConfig struct {
	Path  string   `toml:"path"`
	Words []string `toml:"words"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Color bool `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxTextLength: analysis.DefaultMaxText,
			DebounceMS:    300,
		},
		Analysis: AnalysisConfig{
			BaseURL:   analysis.DefaultBaseURL,
			Endpoint:  analysis.DefaultEndpoint,
			TimeoutMS: 8000,
		},
		Dict: DictConfig{
			Words: []string{},
		},
		CLI: CliConfig{
			Color: true,
		},
	}
}

// Debounce returns the edit debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Server.DebounceMS) * time.Millisecond
}

// Timeout returns the per-request analysis timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Analysis.TimeoutMS) * time.Millisecond
}

// NewClient builds the analysis client described by c.
func (c *Config) NewClient() *analysis.Client {
	return analysis.NewClient(c.Analysis.BaseURL, c.Analysis.Endpoint, c.Server.MaxTextLength, c.Timeout())
}

// validate resets values that cannot work to their defaults.
func (c *Config) validate() {
	def := DefaultConfig()
	if c.Server.MaxTextLength <= 0 {
		log.Warnf("Invalid max_text_length %d, using %d", c.Server.MaxTextLength, def.Server.MaxTextLength)
		c.Server.MaxTextLength = def.Server.MaxTextLength
	}
	if c.Server.DebounceMS < 0 {
		log.Warnf("Invalid debounce_ms %d, using %d", c.Server.DebounceMS, def.Server.DebounceMS)
		c.Server.DebounceMS = def.Server.DebounceMS
	}
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = def.Analysis.BaseURL
	}
	if c.Analysis.Endpoint == "" {
		c.Analysis.Endpoint = def.Analysis.Endpoint
	}
	if c.Analysis.TimeoutMS <= 0 {
		log.Warnf("Invalid timeout_ms %d, using %d", c.Analysis.TimeoutMS, def.Analysis.TimeoutMS)
		c.Analysis.TimeoutMS = def.Analysis.TimeoutMS
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() string {
	return utils.NewPathResolver().GetConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordfix/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath := GetDefaultConfigPath()
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.validate()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if analysisSection, ok := utils.ExtractSection(tempConfig, "analysis"); ok {
		extractAnalysisConfig(analysisSection, &config.Analysis)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.validate()
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text_length"); ok {
		server.MaxTextLength = val
	}
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		server.DebounceMS = val
	}
}

func extractAnalysisConfig(data map[string]any, a *AnalysisConfig) {
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		a.BaseURL = val
	}
	if val, ok := utils.ExtractString(data, "endpoint"); ok {
		a.Endpoint = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		a.TimeoutMS = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractStrings(data, "words"); ok {
		dict.Words = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// LoadDict builds the user dictionary: the file at Path, if any, plus Words.
// A missing file is not an error; it is created on the first Save.
func (d DictConfig) LoadDict() (*dictionary.UserDict, string, error) {
	path := utils.NewPathResolver().ResolveFile(d.Path)

	dict := dictionary.New()
	if path != "" && utils.FileExists(path) {
		loaded, err := dictionary.Load(path)
		if err != nil {
			return dictionary.New(d.Words...), path, err
		}
		dict = loaded
	}
	for _, w := range d.Words {
		dict.Add(w)
	}
	return dict, path, nil
}

// RebuildConfigFile overwrites path with the default config and returns the
// path written. An empty path selects the default location.
func RebuildConfigFile(path string) (string, error) {
	if path == "" {
		path = GetDefaultConfigPath()
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return path, err
	}
	return path, utils.SaveTOMLFile(DefaultConfig(), path)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return GetDefaultConfigPath()
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server values and saves to file
func (c *Config) Update(configPath string, maxTextLength, debounceMS *int, baseURL *string) error {
	if maxTextLength != nil {
		c.Server.MaxTextLength = *maxTextLength
	}
	if debounceMS != nil {
		c.Server.DebounceMS = *debounceMS
	}
	if baseURL != nil {
		c.Analysis.BaseURL = *baseURL
	}
	c.validate()
	return SaveConfig(c, configPath)
}
