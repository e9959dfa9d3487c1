package models

import (
	"testing"
	"time"
)

func TestPasswordHashAndCheck(t *testing.T) {
	var u User
	if err := u.SetPassword("s3cret-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "s3cret-password" {
		t.Fatal("password stored in plain text")
	}
	if !u.CheckPassword("s3cret-password") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestSanitizeOmitsPasswordHash(t *testing.T) {
	u := User{Email: "a@b.c", FullName: "A", Role: RolePatient, IsActive: true}
	u.ID = "id-1"
	u.PasswordHash = "hash"

	s := u.Sanitize()
	if s.ID != "id-1" || s.Email != "a@b.c" || s.Role != RolePatient {
		t.Errorf("Sanitize dropped identity fields: %+v", s)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDoctor, RolePatient, RoleStaff, RoleOrganization} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if ValidRole("superuser") {
		t.Error(`ValidRole("superuser") = true`)
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	appt := Appointment{
		StartTime: base,
		EndTime:   base.Add(30 * time.Minute),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical interval", base, base.Add(30 * time.Minute), true},
		{"partial overlap from the middle", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"contained interval", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"adjacent after", base.Add(30 * time.Minute), base.Add(60 * time.Minute), false},
		{"adjacent before", base.Add(-30 * time.Minute), base, false},
		{"disjoint", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appt.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestInventoryDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      InventoryStatus
	}{
		{"empty stock is critical", 0, 10, InventoryCritical},
		{"at threshold is low", 10, 10, InventoryLow},
		{"below threshold is low", 5, 10, InventoryLow},
		{"above threshold is good", 11, 10, InventoryGood},
		{"no threshold configured", 3, 0, InventoryGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{Quantity: tt.quantity, MinThreshold: tt.threshold}
			item.DeriveStatus()
			if item.Status != tt.want {
				t.Errorf("status = %q, want %q", item.Status, tt.want)
			}
		})
	}
}
