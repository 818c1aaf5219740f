package config

// RosterConfig locates the roster file.
type RosterConfig struct {
	// Path is the JSON roster file location.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *RosterConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "employees.json"
	}
}
