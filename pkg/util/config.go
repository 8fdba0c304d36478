package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig. read config file into v. if inlineConfig is not empty, it is parsed as json and takes
// precedence over configPath. if both are empty, config.(json|yaml) is searched in ./data/
func ReadConfig(v *viper.Viper, configPath, inlineConfig string) error {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if inlineConfig != "" {
		v.SetConfigType("json")
		if err := v.ReadConfig(strings.NewReader(inlineConfig)); err != nil {
			return fmt.Errorf("fatal error inline config: %w", err)
		}
		return nil
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if ext := strings.TrimPrefix(filepath.Ext(configPath), "."); ext != "" {
			v.SetConfigType(ext)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./data/")
	}

	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
