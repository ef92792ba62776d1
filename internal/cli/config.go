// Config loading for the formkit CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyStore   = "store"
	cfgKeyDB      = "db"
	cfgKeyListen  = "listen"
	cfgKeyContext = "context"

	defaultDBFile  = "forms.db"
	defaultListen  = ":8080"
	defaultContext = "GENERAL"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing directory or config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyContext, defaultContext)
	v.SetEnvPrefix("FORMKIT")
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveDBPath returns the SQLite path from flag, config, or default.
func resolveDBPath(cfg *viper.Viper) string {
	if flags.dbPath != "" {
		return flags.dbPath
	}
	if v := cfg.GetString(cfgKeyDB); v != "" {
		return v
	}
	return filepath.Join(resolveConfigDir(), defaultDBFile)
}
