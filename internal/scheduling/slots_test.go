package scheduling

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// 2025-03-03 is a Monday, 2025-03-02 a Sunday.
var (
	monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
)

func weekdaysConfig(slotDur, breakDur int, workStart, workEnd string) models.ScheduleConfig {
	return models.ScheduleConfig{
		SlotDurationMinutes:  slotDur,
		BreakDurationMinutes: breakDur,
		WorkStart:            workStart,
		WorkEnd:              workEnd,
		AvailableDays:        datatypes.JSONSlice[int]{1, 2, 3, 4, 5},
		SchedulingMode:       models.ModeInterleaved,
	}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestGenerateSlotsShortWindow(t *testing.T) {
	// 09:00-10:00 with 30min slots and 5min breaks fits exactly one slot:
	// the second candidate 09:35-10:05 would spill past closing time.
	cfg := weekdaysConfig(30, 5, "09:00", "10:00")

	slots, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	want := []Slot{{Start: at(monday, 9, 0), End: at(monday, 9, 30)}}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	cfg := weekdaysConfig(30, 10, "09:00", "17:00")

	slots, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if !slots[0].Start.Equal(at(monday, 9, 0)) {
		t.Errorf("first slot starts at %v", slots[0].Start)
	}
	for i, s := range slots {
		if s.End.Sub(s.Start) != 30*time.Minute {
			t.Errorf("slot %d has length %v", i, s.End.Sub(s.Start))
		}
		if s.End.After(at(monday, 17, 0)) {
			t.Errorf("slot %d spills past closing: %v", i, s.End)
		}
		if i > 0 {
			prev := slots[i-1]
			if !prev.Start.Before(s.Start) {
				t.Errorf("slots not strictly increasing at %d", i)
			}
			if s.Start.Before(prev.End) {
				t.Errorf("slots %d and %d overlap", i-1, i)
			}
		}
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	cfg := weekdaysConfig(25, 5, "08:30", "12:45")

	first, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	second, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different sequences")
	}
}

func TestGenerateSlotsUnavailableDay(t *testing.T) {
	cfg := weekdaysConfig(30, 5, "09:00", "17:00")

	slots, err := GenerateSlots(cfg, sunday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unavailable day, got %d", len(slots))
	}
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	cfg := weekdaysConfig(30, 5, "09:00", "09:00")

	slots, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected zero slots for an empty window, got %d", len(slots))
	}
}

func TestGenerateSlotsContinuousMode(t *testing.T) {
	cfg := weekdaysConfig(30, 15, "09:00", "11:00")
	cfg.SchedulingMode = models.ModeContinuous

	slots, err := GenerateSlots(cfg, monday)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	// Back-to-back: the break is ignored, so four 30min slots fit.
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End) {
			t.Errorf("slot %d not back-to-back with slot %d", i, i-1)
		}
	}
}

func TestGenerateSlotsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.ScheduleConfig
	}{
		{"zero slot duration", weekdaysConfig(0, 5, "09:00", "17:00")},
		{"negative slot duration", weekdaysConfig(-15, 5, "09:00", "17:00")},
		{"negative break", weekdaysConfig(30, -5, "09:00", "17:00")},
		{"garbage work start", weekdaysConfig(30, 5, "morning", "17:00")},
		{"out of range clock", weekdaysConfig(30, 5, "09:00", "25:00")},
		{"out of range minutes", weekdaysConfig(30, 5, "09:60", "17:00")},
		{"trailing seconds", weekdaysConfig(30, 5, "09:00:30", "17:00")},
		{"trailing garbage", weekdaysConfig(30, 5, "09:00", "17:00x")},
		{"inverted window", weekdaysConfig(30, 5, "17:00", "09:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateSlots(tt.cfg, monday); !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("got %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestIsoWeekday(t *testing.T) {
	if got := isoWeekday(monday); got != 1 {
		t.Errorf("monday = %d, want 1", got)
	}
	if got := isoWeekday(sunday); got != 7 {
		t.Errorf("sunday = %d, want 7", got)
	}
}
