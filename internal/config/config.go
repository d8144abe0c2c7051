// Package config loads site configuration from a CUE file unified with
// an embedded defaults schema. Absent fields take their schema defaults,
// so an empty (or missing) config file yields a fully usable Config.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded site configuration.
type Config struct {
	Site     SiteConfig     `json:"site"`
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
}

// SiteConfig configures presentation.
type SiteConfig struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	BaseURL  string `json:"baseURL"`
	PageSize int    `json:"pageSize"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// DatabaseConfig configures the entry store.
type DatabaseConfig struct {
	Path string `json:"path"`
}

// LoadError represents an error that occurred during config loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load error codes.
const (
	ErrCodeNotFound = "CONFIG_NOT_FOUND"
	ErrCodeParse    = "CONFIG_PARSE"
	ErrCodeInvalid  = "CONFIG_INVALID"
)

// Load reads a CUE config file and unifies it with the embedded schema.
// An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("embedded schema: %v", err)}
	}

	value := schema
	if path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
			}
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading config: %v", err)}
		}

		user := ctx.CompileBytes(src, cue.Filename(path))
		if err := user.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", path, err)}
		}
		value = schema.Unify(user)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("validating config: %v", err)}
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("decoding config: %v", err)}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Default returns the schema defaults without reading any file.
func Default() (*Config, error) {
	return Load("")
}

// applyEnv overlays the environment variables the serve command honors.
// godotenv populates these from a .env file in main when present.
func (c *Config) applyEnv() {
	if addr := os.Getenv("LAMBDALOG_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("LAMBDALOG_DB"); path != "" {
		c.Database.Path = path
	}
}
