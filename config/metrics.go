package config

import "fmt"

// MetricsConfig selects and configures the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
	JSONLEnabled      bool   `json:"jsonl_enabled"`
	JSONLPath         string `json:"jsonl_path"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
	if c.JSONLPath == "" {
		c.JSONLPath = "battsim_trace.jsonl"
	}
}

// Validate checks mandatory fields of enabled sinks.
func (c MetricsConfig) Validate() error {
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("metrics: influx_url is required when influx is enabled")
	}
	return nil
}
