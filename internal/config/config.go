// Package config loads d2iface tool settings from a yaml file, D2IFACE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/d2fps/d2interface/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	Log  logging.Config `mapstructure:"log" yaml:"log"`
	Game Game           `mapstructure:"game" yaml:"game"`
}

type Game struct {
	// Dir is the installation holding Game.exe and the D2 modules.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Bases overrides module load bases as module=base, e.g.
	// D2Client.dll=0x6fab0000.
	Bases []string `mapstructure:"bases" yaml:"bases"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"dir":        "game.dir",
	"base":       "game.bases",
}

func Defaults() map[string]any {
	return map[string]any{
		"log.level":  "info",
		"log.format": "text",
		"game.dir":   ".",
	}
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "d2iface"), nil
}

// Load reads the configuration. file, if not empty, replaces the search for
// d2iface.yaml in the user config directory and the working directory.
func Load(cmd *cobra.Command, file string) (Config, error) {
	var c Config
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("d2iface")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix("d2iface")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// ModuleBases parses the configured base overrides.
func (g Game) ModuleBases() (map[string]uintptr, error) {
	bases := make(map[string]uintptr, len(g.Bases))
	for _, entry := range g.Bases {
		module, s, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("base %q: want module=base", entry)
		}
		module = strings.TrimSpace(module)
		base, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("base of %s: %w", module, err)
		}
		bases[module] = uintptr(base)
	}
	return bases, nil
}
