package scheduling

import (
	"fmt"
	"time"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// Slot is a candidate appointment interval. The interval is half-open:
// [Start, End).
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// parseClock parses an "HH:MM" wall-clock string into minutes since midnight.
// Anything beyond the hour and minute, including trailing seconds, is rejected.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// isoWeekday returns the ISO weekday number for t: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func dayAvailable(cfg models.ScheduleConfig, day time.Time) bool {
	wd := isoWeekday(day)
	for _, d := range cfg.AvailableDays {
		if d == wd {
			return true
		}
	}
	return false
}

// validateConfig rejects configurations that cannot produce a well-formed
// schedule. WorkStart == WorkEnd is allowed and simply yields zero slots.
func validateConfig(cfg models.ScheduleConfig) (startMin, endMin int, err error) {
	if cfg.SlotDurationMinutes <= 0 {
		return 0, 0, fmt.Errorf("%w: slot duration must be positive", ErrInvalidConfiguration)
	}
	if cfg.BreakDurationMinutes < 0 {
		return 0, 0, fmt.Errorf("%w: break duration must not be negative", ErrInvalidConfiguration)
	}
	startMin, err = parseClock(cfg.WorkStart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	endMin, err = parseClock(cfg.WorkEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if startMin > endMin {
		return 0, 0, fmt.Errorf("%w: work start %s is after work end %s",
			ErrInvalidConfiguration, cfg.WorkStart, cfg.WorkEnd)
	}
	return startMin, endMin, nil
}

// ValidateConfig reports whether cfg can ever produce a well-formed
// schedule, without generating anything.
func ValidateConfig(cfg models.ScheduleConfig) error {
	_, _, err := validateConfig(cfg)
	if err != nil {
		return err
	}
	for _, d := range cfg.AvailableDays {
		if d < 1 || d > 7 {
			return fmt.Errorf("%w: weekday %d out of range 1-7", ErrInvalidConfiguration, d)
		}
	}
	switch cfg.SchedulingMode {
	case models.ModeContinuous, models.ModeInterleaved, models.ModeCustom:
	default:
		return fmt.Errorf("%w: unknown scheduling mode %q", ErrInvalidConfiguration, cfg.SchedulingMode)
	}
	return nil
}

// GenerateSlots computes the ordered candidate slots for one calendar day.
// It is a pure function of the configuration and the day: identical inputs
// always yield the identical sequence, slots are strictly increasing by
// start time and never overlap. A slot that would spill past WorkEnd is not
// produced.
func GenerateSlots(cfg models.ScheduleConfig, day time.Time) ([]Slot, error) {
	startMin, endMin, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	if !dayAvailable(cfg, day) {
		return nil, nil
	}

	step := cfg.SlotDurationMinutes
	if cfg.SchedulingMode != models.ModeContinuous {
		step += cfg.BreakDurationMinutes
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	slotDur := time.Duration(cfg.SlotDurationMinutes) * time.Minute
	workEnd := midnight.Add(time.Duration(endMin) * time.Minute)

	var slots []Slot
	for cursor := midnight.Add(time.Duration(startMin) * time.Minute); ; cursor = cursor.Add(time.Duration(step) * time.Minute) {
		slotEnd := cursor.Add(slotDur)
		if slotEnd.After(workEnd) {
			break
		}
		slots = append(slots, Slot{Start: cursor, End: slotEnd})
	}
	return slots, nil
}
