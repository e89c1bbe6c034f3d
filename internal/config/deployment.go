package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/warehouse-apps/router-launcher/internal/model"
)

// Keys of the deployment file. They match the mapstructure tags of
// model.Config.
const (
	keyAppName         = "app_name"
	keyAppHome         = "app_home"
	keyPythonBase      = "python_base"
	keyWarehouseDjango = "warehouse_django"
	keySettingsModule  = "settings_module"
	keyLogLevel        = "log_level"
)

// load stacks the profile, the deployment file at path (skipped when
// empty) and the environment overrides, and decodes the result.
//
// Unknown keys in the deployment file are rejected so that a misspelled
// path does not silently fall back to the compiled default.
func load(profile Profile, path string) (model.Config, error) {
	v := viper.New()

	// Compiled profile
	v.SetDefault(keyAppName, profile.AppName)
	v.SetDefault(keyAppHome, profile.AppHome)
	v.SetDefault(keyWarehouseDjango, profile.WarehouseDjango)
	v.SetDefault(keySettingsModule, profile.SettingsModule)
	v.SetDefault(keyLogLevel, defaultLogLevel)

	// Environment overrides. Empty variables count as unset.
	if err := v.BindEnv(keyPythonBase, EnvPythonBase); err != nil {
		return model.Config{}, fmt.Errorf("failed to bind %s: %w", EnvPythonBase, err)
	}
	if err := v.BindEnv(keyLogLevel, EnvLogLevel); err != nil {
		return model.Config{}, fmt.Errorf("failed to bind %s: %w", EnvLogLevel, err)
	}

	// Deployment file, whatever its extension.
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return model.Config{}, fmt.Errorf("failed to read deployment file %s: %w", path, err)
		}
	}

	var cfg model.Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("failed to decode deployment file %s: %w", path, err)
	}
	return cfg, nil
}
