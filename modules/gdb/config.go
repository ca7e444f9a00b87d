package gdb

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"

	"github.com/guarzo/gdbapi/common"
)

// codePlaceholder is the token in BaseURL that gets replaced with the
// uppercase mark code.
const codePlaceholder = "{code}"

// Defaults applied by New for zero-valued Config fields.
const (
	DefaultBaseURL        = "https://www.geodesy.linz.govt.nz/gdbweb/api/mark/" + codePlaceholder
	DefaultUserAgent      = "gdbapi"
	DefaultExpiryHours    = 6
	DefaultTimeoutSeconds = 15
)

// Config carries the settings for a GDB service. The zero value is usable:
// New fills in defaults before validating.
type Config struct {
	// BaseURL is the mark endpoint template. It must contain exactly one
	// {code} placeholder.
	BaseURL string `validate:"required,contains={code}"`

	// CacheFile is the SQLite file backing the disk cache. A leading "~" is
	// expanded against the user's home directory (falling back to the user
	// cache directory, then the system temp directory).
	CacheFile string `validate:"required_if=UseCache true"`

	// UseCache enables the disk cache. The in-process cache is always on.
	UseCache bool

	// ExpiryHours is how long a disk cache row stays valid.
	ExpiryHours float64 `validate:"gt=0"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds float64 `validate:"gt=0"`

	UserAgent string

	// Debug turns on debug-level logging of cache and fetch internals.
	Debug bool
}

var validate = validator.New()

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.ExpiryHours == 0 {
		c.ExpiryHours = DefaultExpiryHours
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return c
}

// New builds a GdbService from cfg. Construct one service per endpoint and
// share it; constructing a replacement is how settings change.
func New(cfg Config) (GdbService, error) {
	cfg = cfg.withDefaults()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid gdb config: %w", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	timeout := time.Duration(cfg.TimeoutSeconds * float64(time.Second))
	httpClient := common.NewGdbHttpClient(cfg.UserAgent, timeout, &http.Client{})
	client := NewGdbClient(cfg.BaseURL, httpClient)

	var store common.CacheRepository = common.NopCache{}
	if cfg.UseCache {
		path, err := expandPath(cfg.CacheFile)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve cache file %q: %w", cfg.CacheFile, err)
		}
		expiry := time.Duration(cfg.ExpiryHours * float64(time.Hour))
		store = NewSqliteCache(path, expiry)
	}

	return NewGdbService(client, store), nil
}

// expandPath resolves a leading "~" to a per-user writable directory.
// Precedence: home directory, then user cache directory, then temp.
func expandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	base := ""
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		base = dir
	} else if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		base = dir
	} else {
		base = os.TempDir()
	}
	if base == "" {
		return "", fmt.Errorf("no usable base directory for %q", path)
	}
	return filepath.Join(base, strings.TrimPrefix(path[1:], "/")), nil
}
