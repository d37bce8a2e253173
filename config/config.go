package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
)

// settableFlags lists the flags a config file may provide defaults for.
// Anything else (notably in-place) must be an explicit CLI decision.
var settableFlags = map[string]bool{
	"distance":  true,
	"effort":    true,
	"jobs":      true,
	"threshold": true,
}

// defaultConfigPath returns the config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "jxlsweep")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "jxlsweep")
	}
}

// Load reads the optional config file from the default location.
// A missing file is not an error; a malformed one is.
func Load() (*viper.Viper, error) {
	return LoadFrom(defaultConfigPath())
}

// LoadFrom reads the optional config file from dir.
func LoadFrom(dir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Environment variable overrides
	v.SetEnvPrefix("JXLSWEEP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	return v, nil
}

// Resolver surfaces config file values to kong so that flag precedence
// stays: explicit flag > config file > built-in default.
func Resolver(v *viper.Viper) kong.Resolver {
	return kong.ResolverFunc(func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		if !settableFlags[flag.Name] || !v.IsSet(flag.Name) {
			return nil, nil
		}
		return v.Get(flag.Name), nil
	})
}
