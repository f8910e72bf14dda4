package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/anandk87/filetrack/internal/flagx"
	"github.com/anandk87/filetrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "180s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	SessionTimeout timex.Duration `json:"session_timeout"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CredentialsDSN string         `json:"credentials_dsn"`
}

// parseJson overlays cfg with values loaded from a JSON file, resolved from
// the -c/-config flags. When no file is given, nothing happens. Read or
// unmarshal errors panic (caller may recover if desired). Intended usage is
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionTimeout.Duration != 0 {
		cfg.SessionTimeout = time.Duration(jc.SessionTimeout.Duration)
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CredentialsDSN != "" {
		cfg.CredentialsDSN = jc.CredentialsDSN
	}
}
