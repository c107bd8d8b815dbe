package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/armature-dev/armature/internal/project"
)

// Config represents the armature configuration
type Config struct {
	ProjectName string          `mapstructure:"project_name"`
	UI          UIConfig        `mapstructure:"ui"`
	Resources   ResourcesConfig `mapstructure:"resources"`
	Generator   GeneratorConfig `mapstructure:"generator"`
}

// UIConfig locates the admin app source tree
type UIConfig struct {
	Src string `mapstructure:"src"`
}

// ResourcesConfig locates the resource declarations
type ResourcesConfig struct {
	Dir  string `mapstructure:"dir"`
	Base string `mapstructure:"base"`
}

// GeneratorConfig tunes descriptor extraction
type GeneratorConfig struct {
	Factory string `mapstructure:"factory"`
}

// Load loads the configuration from armature.yml or armature.yaml in
// the current directory, falling back to defaults when absent.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads the configuration from the given directory
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("ui.src", "src")
	v.SetDefault("resources.dir", "src/resources")
	v.SetDefault("resources.base", "base.ts")
	v.SetDefault("generator.factory", "defineResource")

	// Set config name and paths
	v.SetConfigName("armature")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Layout resolves the project layout rooted at the given directory
func (c *Config) Layout(root string) project.Layout {
	return project.Layout{
		Root:         root,
		Src:          c.UI.Src,
		ResourcesDir: c.Resources.Dir,
		BaseFile:     c.Resources.Base,
	}
}

// InProject checks if the current directory is an armature project
func InProject() bool {
	if _, err := os.Stat("armature.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("armature.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot tries to find the project root by looking for armature.yaml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		// Check for armature.yml or armature.yaml
		if _, err := os.Stat(filepath.Join(dir, "armature.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "armature.yaml")); err == nil {
			return dir, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in an armature project (no armature.yaml found)")
		}
		dir = parent
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if !identifierPattern.MatchString(cfg.Generator.Factory) {
		return fmt.Errorf("generator.factory must be a valid identifier, got: %s", cfg.Generator.Factory)
	}
	if cfg.Resources.Dir == "" {
		return fmt.Errorf("resources.dir must not be empty")
	}
	if !strings.HasSuffix(cfg.Resources.Base, ".ts") {
		return fmt.Errorf("resources.base must name a .ts file, got: %s", cfg.Resources.Base)
	}
	return nil
}
