package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/careerrise/careerctl/internal/flagx"
)

// duration lets JSON specify intervals either as strings like "10s" or
// as integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
	return nil
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling.
type jsonConfig struct {
	ServerEndpointURL string   `json:"server_endpoint_url"`
	RequestTimeout    duration `json:"request_timeout"`
	DatabasePath      string   `json:"database_path"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Missing flag means no JSON is loaded. Read or unmarshal errors panic;
// a config file that exists but cannot be used is a startup fault.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
