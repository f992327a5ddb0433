package leave

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-03-10", "2025-03-10", 1},
		{"2025-03-10", "2025-03-12", 3},
		{"2025-02-27", "2025-03-01", 3},
		{"2024-02-28", "2024-03-01", 3},
		{"2025-12-31", "2026-01-01", 2},
		{"2025-03-12", "2025-03-10", 0},
	}
	for _, c := range cases {
		got := InclusiveDays(date(c.start), date(c.end))
		if got != c.want {
			t.Errorf("InclusiveDays(%s, %s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestInclusiveDaysIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	start := time.Date(2025, time.March, 29, 23, 30, 0, 0, loc)
	end := time.Date(2025, time.March, 31, 0, 15, 0, 0, loc)
	if got := InclusiveDays(start, end); got != 3 {
		t.Errorf("InclusiveDays() = %d, want 3", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestNewBalance(t *testing.T) {
	lt := LeaveType{ID: "lt-1", Name: "Annual Leave", DefaultDays: 20}

	b := NewBalance(lt, 8)
	if b.Total != 20 || b.Taken != 8 || b.Remaining != 12 {
		t.Errorf("NewBalance() = %+v, want total 20 taken 8 remaining 12", b)
	}

	over := NewBalance(lt, 25)
	if over.Remaining != -5 {
		t.Errorf("NewBalance().Remaining = %d, want -5", over.Remaining)
	}
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	base := CreateLeaveRequestRequest{
		EmployeeID:  "0190a5c4-1111-7000-8000-000000000000",
		LeaveTypeID: "0190a5c4-2222-7000-8000-000000000000",
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "Trip",
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	withDays := base
	withDays.Days = 3
	if err := withDays.Validate(); err != nil {
		t.Errorf("Validate() with matching days: %v", err)
	}

	mismatch := base
	mismatch.Days = 4
	if err := mismatch.Validate(); err == nil {
		t.Error("Validate() with mismatched days: want error")
	}

	reversed := base
	reversed.StartDate, reversed.EndDate = base.EndDate, base.StartDate
	if err := reversed.Validate(); err == nil {
		t.Error("Validate() with end before start: want error")
	}

	badDate := base
	badDate.StartDate = "2025-02-30"
	if err := badDate.Validate(); err == nil {
		t.Error("Validate() with impossible date: want error")
	}

	unknownType := base
	unknownType.LeaveTypeID = "annual"
	if err := unknownType.Validate(); !errors.Is(err, ErrLeaveTypeNotFound) {
		t.Errorf("Validate() with malformed leaveTypeId = %v, want ErrLeaveTypeNotFound", err)
	}

	start, end := base.Period()
	if InclusiveDays(start, end) != 3 {
		t.Errorf("Period() = %v..%v, want a 3 day span", start, end)
	}
}

func TestValidateMalformedIDs(t *testing.T) {
	review := ReviewLeaveRequestRequest{ID: "not-a-uuid"}
	if err := review.Validate(); !errors.Is(err, ErrLeaveRequestNotFound) {
		t.Errorf("ReviewLeaveRequestRequest.Validate() = %v, want ErrLeaveRequestNotFound", err)
	}

	review.ID = "0190a5c4-0000-7000-8000-000000000000"
	if err := review.Validate(); err != nil {
		t.Errorf("ReviewLeaveRequestRequest.Validate() with a valid id: %v", err)
	}

	update := UpdateLeaveTypeRequest{ID: "42", Name: "Annual Leave", Description: "Paid", DefaultDays: 20}
	if err := update.Validate(); !errors.Is(err, ErrLeaveTypeNotFound) {
		t.Errorf("UpdateLeaveTypeRequest.Validate() = %v, want ErrLeaveTypeNotFound", err)
	}
}
