package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vistaran/helpdesk/internal/flagx"
	"github.com/vistaran/helpdesk/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "30s" or as integer nanoseconds.
type jsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	StoreDSN       string         `json:"store_dsn"`
	PollInterval   timex.Duration `json:"poll_interval"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// If no config flag is present, cfg is left untouched. Read or unmarshal
// errors panic; config is resolved at startup wiring, where failing fast is
// the correct behavior.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
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

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.StoreDSN != "" {
		cfg.StoreDSN = jc.StoreDSN
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
