// Package config resolves the launcher configuration record.
//
// Values come from three layers, lowest precedence first:
//
//  1. the compiled profile selected by the application name
//  2. an optional YAML deployment file (ROUTER_LAUNCHER_DEPLOYMENT)
//  3. environment variable overrides (PYTHON_BASE, ROUTER_LAUNCHER_LOG_LEVEL)
//
// The layers are stacked with viper: the profile as defaults, the
// deployment file as the config file, and the overrides as bound
// environment variables.
//
// Resolution never fails. Anything unset falls back to the compiled
// default, and problems with the deployment file are returned as warnings
// for the caller to log.
package config

import (
	"os"
	"path/filepath"

	"github.com/warehouse-apps/router-launcher/internal/model"
)

// Environment variables read by the launcher.
const (
	// EnvPythonBase overrides the runtime base directory.
	EnvPythonBase = "PYTHON_BASE"

	// EnvDeployment names an optional YAML deployment file.
	EnvDeployment = "ROUTER_LAUNCHER_DEPLOYMENT"

	// EnvLogLevel overrides the launcher's own log level.
	EnvLogLevel = "ROUTER_LAUNCHER_LOG_LEVEL"
)

// Resolve builds the configuration for appName from the compiled profile,
// the deployment file and the environment.
//
// The returned warnings describe inputs that were ignored. They never
// prevent a usable Config from being returned: a deployment file that
// cannot be used is dropped as a whole and the profile and environment
// are resolved without it.
func Resolve(appName string) (model.Config, []error) {
	var warnings []error

	profile, _ := LookupProfile(appName)

	cfg, err := load(profile, os.Getenv(EnvDeployment))
	if err != nil {
		warnings = append(warnings, err)
		if cfg, err = load(profile, ""); err != nil {
			warnings = append(warnings, err)
			cfg = profileConfig(profile)
		}
	}

	return derive(cfg, profile), warnings
}

// profileConfig is the compiled profile alone, before any path is derived.
func profileConfig(profile Profile) model.Config {
	return model.Config{
		AppName:         profile.AppName,
		AppHome:         profile.AppHome,
		WarehouseDjango: profile.WarehouseDjango,
		SettingsModule:  profile.SettingsModule,
		LogLevel:        defaultLogLevel,
	}
}

// derive fills every path that was not set explicitly from AppHome and
// AppName. It runs after all overlays so that a deployment file changing
// app_home moves the derived paths with it.
func derive(cfg model.Config, profile Profile) model.Config {
	if cfg.PythonBase == "" {
		cfg.PythonBase = filepath.Join(cfg.AppHome, "python")
	}
	if cfg.LibDir == "" {
		cfg.LibDir = filepath.Join(cfg.AppHome, "PROD", "lib")
	}
	if cfg.AppBin == "" {
		cfg.AppBin = filepath.Join(cfg.AppHome, "PROD", "bin", cfg.AppName+".py")
	}
	if cfg.AppConfig == "" {
		cfg.AppConfig = filepath.Join(cfg.AppHome, "conf", cfg.AppName+".conf")
	}
	if cfg.WarehouseConfig == "" {
		cfg.WarehouseConfig = filepath.Join(cfg.AppHome, "conf", profile.WarehouseConfigName)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.AppHome, "var", cfg.AppName+".daemon.log")
	}
	return cfg
}
