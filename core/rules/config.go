package rules

import "fmt"

// Fairness modes.
const (
	FairnessBalance = "balance"
	FairnessCap     = "cap"
)

// Shared duty modes.
const (
	SharedDutyCap        = "cap"
	SharedDutyHalfDayMin = "halfday_min"
)

// Phone-free cardinalities.
const (
	PhoneFreeExactlyOne = "exactly_one"
	PhoneFreeAtLeastOne = "at_least_one"
)

// FairnessConfig selects between the balancing objective and a hard spread
// tolerance.
type FairnessConfig struct {
	// Mode is "balance" (minimize the largest spread) or "cap" (hard bound).
	Mode string `json:"mode"`
	// Tolerance is the maximum allowed spread in cap mode.
	Tolerance int `json:"tolerance"`
}

// PhoneFreeConfig sets the weekly phone-free half-day cardinality.
type PhoneFreeConfig struct {
	// Mode is "exactly_one" or "at_least_one".
	Mode string `json:"mode"`
}

// SharedDutyConfig selects the per-slot cap or the half-day minimum variant.
type SharedDutyConfig struct {
	// Mode is "cap" or "halfday_min".
	Mode string `json:"mode"`
	// HalfDayMin is the minimum tasks-slots per team per half-day in
	// halfday_min mode.
	HalfDayMin int `json:"halfday_min"`
}

// Config carries the rule toggle set and per-rule knobs.
type Config struct {
	// Toggles maps rule name to enabled. Missing entries default to enabled.
	Toggles    map[string]bool  `json:"toggles"`
	Fairness   FairnessConfig   `json:"fairness"`
	PhoneFree  PhoneFreeConfig  `json:"phone_free"`
	SharedDuty SharedDutyConfig `json:"shared_duty"`
}

// Enabled reports whether the named rule is active. Unknown or unlisted
// rules are enabled, matching the all-enabled default.
func (c Config) Enabled(name string) bool {
	if c.Toggles == nil {
		return true
	}
	v, ok := c.Toggles[name]
	if !ok {
		return true
	}
	return v
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Fairness.Mode == "" {
		c.Fairness.Mode = FairnessBalance
	}
	if c.Fairness.Tolerance == 0 {
		c.Fairness.Tolerance = 2
	}
	if c.PhoneFree.Mode == "" {
		c.PhoneFree.Mode = PhoneFreeExactlyOne
	}
	if c.SharedDuty.Mode == "" {
		c.SharedDuty.Mode = SharedDutyCap
	}
	if c.SharedDuty.HalfDayMin == 0 {
		c.SharedDuty.HalfDayMin = 4
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Fairness.Mode != FairnessBalance && c.Fairness.Mode != FairnessCap {
		return fmt.Errorf("unknown fairness mode %s", c.Fairness.Mode)
	}
	if c.Fairness.Tolerance < 0 {
		return fmt.Errorf("fairness tolerance must not be negative")
	}
	if c.PhoneFree.Mode != PhoneFreeExactlyOne && c.PhoneFree.Mode != PhoneFreeAtLeastOne {
		return fmt.Errorf("unknown phone_free mode %s", c.PhoneFree.Mode)
	}
	if c.SharedDuty.Mode != SharedDutyCap && c.SharedDuty.Mode != SharedDutyHalfDayMin {
		return fmt.Errorf("unknown shared_duty mode %s", c.SharedDuty.Mode)
	}
	if c.SharedDuty.HalfDayMin < 0 {
		return fmt.Errorf("shared_duty halfday_min must not be negative")
	}
	for name := range c.Toggles {
		if !knownRule(name) {
			return fmt.Errorf("unknown rule %s in toggles", name)
		}
	}
	return nil
}
