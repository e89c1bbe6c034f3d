package launcher

import (
	"path/filepath"
	"strings"

	"github.com/warehouse-apps/router-launcher/internal/model"
)

// Variables exported into the router's environment.
const (
	EnvLibraryPath    = "LD_LIBRARY_PATH"
	EnvImportPath     = "PYTHONPATH"
	EnvAppConfig      = "APP_CONFIG"
	EnvSettingsModule = "DJANGO_SETTINGS_MODULE"
	EnvVirtualEnv     = "VIRTUAL_ENV"
	EnvPath           = "PATH"
	EnvPythonHome     = "PYTHONHOME"
)

// environ is an ordered KEY=VALUE list where a later Set replaces the
// earlier definition in place instead of appending a duplicate.
type environ struct {
	keys   []string
	values map[string]string
}

func parseEnviron(base []string) *environ {
	e := &environ{values: make(map[string]string, len(base))}
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		e.Set(k, v)
	}
	return e
}

func (e *environ) Get(key string) string {
	return e.values[key]
}

func (e *environ) Set(key, value string) {
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *environ) Unset(key string) {
	if _, exists := e.values[key]; !exists {
		return
	}
	delete(e.values, key)
	for i, k := range e.keys {
		if k == key {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
}

func (e *environ) List() []string {
	out := make([]string, 0, len(e.keys))
	for _, k := range e.keys {
		out = append(out, k+"="+e.values[k])
	}
	return out
}

// activate applies what sourcing <base>/bin/activate does to an
// environment: VIRTUAL_ENV set, the runtime's bin first on PATH and
// PYTHONHOME cleared.
func activate(e *environ, pythonBase string) {
	bin := filepath.Join(pythonBase, "bin")
	path := bin
	if cur := e.Get(EnvPath); cur != "" {
		path = bin + string(filepath.ListSeparator) + cur
	}
	e.Set(EnvVirtualEnv, pythonBase)
	e.Set(EnvPath, path)
	e.Unset(EnvPythonHome)
}

// BuildEnv returns the router's environment: the launcher's environment
// with the runtime activated and the deployment variables exported.
func BuildEnv(base []string, cfg model.Config) []string {
	e := parseEnviron(base)
	e.Set(EnvLibraryPath, cfg.LibraryPath())
	activate(e, cfg.PythonBase)
	e.Set(EnvImportPath, cfg.ImportPath())
	e.Set(EnvAppConfig, cfg.WarehouseConfig)
	e.Set(EnvSettingsModule, cfg.SettingsModule)
	return e.List()
}
