package config

import (
	"fmt"
	"strings"

	"github.com/squadplan/squadplan/core/model"
)

// CoverageConfig overrides the default phone coverage targets and lets
// individual slots be marked phone-closed for the week.
type CoverageConfig struct {
	// MorningTarget is the required phone headcount in the morning band.
	// 0 keeps the default.
	MorningTarget int `json:"morning_target"`
	// AfternoonTarget is the required phone headcount in the afternoon band.
	AfternoonTarget int `json:"afternoon_target"`
	// FridayAfternoonTarget overrides AfternoonTarget on Friday.
	FridayAfternoonTarget int `json:"friday_afternoon_target"`
	// PhoneClosed lists "Day HH:MM" entries whose phone headcount is forced
	// to zero, e.g. "Wednesday 14:00".
	PhoneClosed []string `json:"phone_closed"`
}

// Validate checks targets and closure entries without building a calendar.
func (c CoverageConfig) Validate() error {
	if c.MorningTarget < 0 || c.AfternoonTarget < 0 || c.FridayAfternoonTarget < 0 {
		return fmt.Errorf("coverage targets must not be negative")
	}
	_, err := c.Calendar()
	return err
}

// Calendar builds the weekly calendar with the overrides applied.
func (c CoverageConfig) Calendar() (model.Calendar, error) {
	cal := model.DefaultCalendar()
	if c.MorningTarget > 0 {
		cal.MorningTarget = c.MorningTarget
	}
	if c.AfternoonTarget > 0 {
		cal.AfternoonTarget = c.AfternoonTarget
	}
	if c.FridayAfternoonTarget > 0 {
		cal.FridayAfternoonTarget = c.FridayAfternoonTarget
	}
	for _, entry := range c.PhoneClosed {
		day, slot, err := parseDaySlot(entry)
		if err != nil {
			return model.Calendar{}, err
		}
		if cal.PhoneClosed == nil {
			cal.PhoneClosed = make(map[model.DaySlot]bool)
		}
		cal.PhoneClosed[model.DaySlot{Day: day, Slot: slot}] = true
	}
	return cal, nil
}

func parseDaySlot(entry string) (model.Day, model.Slot, error) {
	parts := strings.Fields(entry)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("phone_closed entry %q: want \"Day HH:MM\"", entry)
	}
	day, err := model.ParseDay(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("phone_closed entry %q: %w", entry, err)
	}
	slot, err := model.ParseSlot(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("phone_closed entry %q: %w", entry, err)
	}
	return day, slot, nil
}
