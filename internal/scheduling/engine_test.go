package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

type engineFixture struct {
	engine  *Engine
	store   *MemoryStore
	doctor  models.Doctor
	patient models.Patient
}

func newEngineFixture(t *testing.T, cfg models.ScheduleConfig) *engineFixture {
	t.Helper()
	store := NewMemoryStore()
	doctor := store.AddDoctor(models.Doctor{
		HospitalID:     "hospital-1",
		Specialization: "General Dentist",
		Schedule:       cfg,
	})
	patient := store.AddPatient(models.Patient{Age: 34, Gender: "female"})
	return &engineFixture{
		engine:  NewEngine(store, zap.NewNop()),
		store:   store,
		doctor:  doctor,
		patient: patient,
	}
}

func (f *engineFixture) book(t *testing.T, start time.Time) *models.Appointment {
	t.Helper()
	appt, err := f.engine.Book(context.Background(), BookingRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		Start:     start,
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("Book(%v): %v", start, err)
	}
	return appt
}

func TestBookDerivesEndTime(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))

	appt := f.book(t, at(monday, 9, 0))

	if appt.Status != models.StatusScheduled {
		t.Errorf("status = %s, want scheduled", appt.Status)
	}
	if !appt.EndTime.Equal(at(monday, 9, 30)) {
		t.Errorf("end = %v, want 09:30", appt.EndTime)
	}
	if appt.HospitalID != f.doctor.HospitalID {
		t.Errorf("hospital = %s, want %s", appt.HospitalID, f.doctor.HospitalID)
	}
}

func TestBookRejectsOverlap(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	f.book(t, at(monday, 9, 0))

	// 09:15-09:45 overlaps 09:00-09:30 (09:00 < 09:45 and 09:15 < 09:30).
	_, err := f.engine.Book(context.Background(), BookingRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		Start:     at(monday, 9, 15),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestBookAdjacentSlotsDoNotConflict(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 0, "09:00", "17:00"))
	f.book(t, at(monday, 9, 0))

	// Half-open intervals: [09:00,09:30) and [09:30,10:00) touch but do
	// not overlap.
	f.book(t, at(monday, 9, 30))
}

func TestBookValidatesWindowAndDay(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))

	tests := []struct {
		name  string
		start time.Time
	}{
		{"before opening", at(monday, 8, 0)},
		{"spills past closing", at(monday, 16, 45)},
		{"unavailable day", at(sunday, 9, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Book(context.Background(), BookingRequest{
				DoctorID:  f.doctor.ID,
				PatientID: f.patient.ID,
				Start:     tt.start,
			})
			if !errors.Is(err, ErrInvalidSlot) {
				t.Fatalf("got %v, want ErrInvalidSlot", err)
			}
		})
	}
}

func TestBookUnknownParties(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))

	_, err := f.engine.Book(context.Background(), BookingRequest{
		DoctorID:  "no-such-doctor",
		PatientID: f.patient.ID,
		Start:     at(monday, 9, 0),
	})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("got %v, want ErrDoctorNotFound", err)
	}

	_, err = f.engine.Book(context.Background(), BookingRequest{
		DoctorID:  f.doctor.ID,
		PatientID: "no-such-patient",
		Start:     at(monday, 9, 0),
	})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("got %v, want ErrPatientNotFound", err)
	}
}

func TestAvailableSlotsExcludeBooked(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	booked := f.book(t, at(monday, 9, 0))

	free, err := f.engine.AvailableSlots(context.Background(), f.doctor.ID, monday)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(free) == 0 {
		t.Fatal("expected free slots")
	}
	for _, s := range free {
		if booked.Overlaps(s.Start, s.End) {
			t.Errorf("free slot %v-%v intersects booked appointment", s.Start, s.End)
		}
	}
	if !free[0].Start.Equal(at(monday, 9, 35)) {
		t.Errorf("first free slot starts at %v, want 09:35", free[0].Start)
	}
}

func TestAvailableSlotsUnknownDoctor(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))

	_, err := f.engine.AvailableSlots(context.Background(), "no-such-doctor", monday)
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("got %v, want ErrDoctorNotFound", err)
	}
}

func TestRescheduleMovesInterval(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))

	moved, err := f.engine.Reschedule(context.Background(), appt.ID, at(monday, 11, 0))
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !moved.StartTime.Equal(at(monday, 11, 0)) || !moved.EndTime.Equal(at(monday, 11, 30)) {
		t.Errorf("moved to %v-%v", moved.StartTime, moved.EndTime)
	}
}

func TestRescheduleExcludesSelf(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))

	// 09:15-09:45 overlaps only the appointment being moved, so the
	// self-exclusion must let it through.
	if _, err := f.engine.Reschedule(context.Background(), appt.ID, at(monday, 9, 15)); err != nil {
		t.Fatalf("Reschedule over own interval: %v", err)
	}
}

func TestRescheduleConflictsWithOthers(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	first := f.book(t, at(monday, 9, 0))
	f.book(t, at(monday, 11, 0))

	_, err := f.engine.Reschedule(context.Background(), first.ID, at(monday, 11, 15))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestRescheduleRequiresScheduledStatus(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))
	if _, err := f.engine.Cancel(context.Background(), appt.ID, "sick"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	_, err := f.engine.Reschedule(context.Background(), appt.ID, at(monday, 11, 0))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
}

func TestCancelIsNotIdempotent(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))

	cancelled, err := f.engine.Cancel(context.Background(), appt.ID, "patient request")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled || cancelled.CancelledAt == nil {
		t.Errorf("cancelled = %+v", cancelled)
	}
	if cancelled.CancellationReason != "patient request" {
		t.Errorf("reason = %q", cancelled.CancellationReason)
	}

	if _, err := f.engine.Cancel(context.Background(), appt.ID, "again"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}

	// The failed second cancel must not touch the record.
	after, err := f.store.GetAppointment(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if after.CancellationReason != "patient request" || !after.CancelledAt.Equal(*cancelled.CancelledAt) {
		t.Errorf("state changed after failed cancel: %+v", after)
	}
}

func TestCancelFreesInterval(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))
	if _, err := f.engine.Cancel(context.Background(), appt.ID, ""); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// 09:15-09:45 would have conflicted with the cancelled 09:00-09:30.
	f.book(t, at(monday, 9, 15))
}

func TestCompleteRecordsRevenue(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))

	done, err := f.engine.Complete(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %s", done.Status)
	}
	revs := f.store.Revenues()
	if len(revs) != 1 {
		t.Fatalf("got %d revenue entries, want 1", len(revs))
	}
	if revs[0].AppointmentID != appt.ID || revs[0].Amount != DefaultConsultationFee {
		t.Errorf("revenue = %+v", revs[0])
	}

	if _, err := f.engine.Complete(context.Background(), appt.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second complete: got %v, want ErrInvalidState", err)
	}
	if _, err := f.engine.Cancel(context.Background(), appt.ID, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("cancel after complete: got %v, want ErrInvalidState", err)
	}
}

func TestMarkNoShow(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))
	appt := f.book(t, at(monday, 9, 0))

	done, err := f.engine.MarkNoShow(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if done.Status != models.StatusNoShow {
		t.Errorf("status = %s", done.Status)
	}
	if len(f.store.Revenues()) != 0 {
		t.Error("no-show must not record revenue")
	}
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	f := newEngineFixture(t, weekdaysConfig(30, 5, "09:00", "17:00"))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.engine.Book(context.Background(), BookingRequest{
				DoctorID:  f.doctor.ID,
				PatientID: f.patient.ID,
				Start:     at(monday, 10, 0),
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var booked, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if booked != 1 || conflicts != attempts-1 {
		t.Fatalf("booked=%d conflicts=%d, want 1 and %d", booked, conflicts, attempts-1)
	}

	// No-overlap invariant over the final state.
	appts, err := f.store.ListScheduledBetween(context.Background(), f.doctor.ID, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListScheduledBetween: %v", err)
	}
	for i := range appts {
		for j := i + 1; j < len(appts); j++ {
			a, b := appts[i], appts[j]
			if a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime) {
				t.Errorf("scheduled appointments overlap: %v and %v", a.ID, b.ID)
			}
		}
	}
}
