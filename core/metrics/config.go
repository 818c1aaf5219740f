package metrics

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusEnabled turns on the Prometheus sink and its HTTP endpoint.
	PrometheusEnabled bool `json:"prometheus_enabled"`
	// PrometheusAddr is the listen address of the metrics endpoint.
	PrometheusAddr string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}
