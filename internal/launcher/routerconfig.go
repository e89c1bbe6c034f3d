package launcher

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/tidwall/jsonc"
)

// RouterConfig holds the router configuration keys the launcher reports
// before starting the router. The router itself owns the file; the
// launcher only reads it.
type RouterConfig struct {
	// LogFile is where the router writes its own rotating log.
	LogFile string `json:"LOG_FILE"`

	// LogLevel is the router's configured level, overridden by -l.
	LogLevel string `json:"LOG_LEVEL"`

	// SourceURL is the database the router reads from.
	SourceURL string `json:"SOURCE_URL"`

	// Destination is the router's output target (analyze, warehouse, file:...).
	Destination string `json:"DESTINATION"`
}

// LoadRouterConfig reads the router's JSON configuration. Comments and
// trailing commas are tolerated so that a hand-edited file can still be
// reported on.
func LoadRouterConfig(path string) (*RouterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read router config: %w", err)
	}

	var rc RouterConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &rc); err != nil {
		return nil, fmt.Errorf("failed to parse router config %s: %w", path, err)
	}
	return &rc, nil
}

// RedactedSource returns SourceURL with any password masked, safe to log.
func (rc *RouterConfig) RedactedSource() string {
	u, err := url.Parse(rc.SourceURL)
	if err != nil {
		return rc.SourceURL
	}
	return u.Redacted()
}
