package leave

import "time"

// LeaveType is a global, admin-defined category of absence
type LeaveType struct {
	ID          string
	Name        string
	Description string
	DefaultDays int // yearly allotment
	CreatedAt   time.Time
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether s -> next is a legal review transition.
// Pending is the only source state; Approved and Rejected are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason  string
	Status  Status
	Comment *string

	CreatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName string
	EmployeeName  *string
}

// Balance is the derived remaining entitlement of one employee for one leave type
type Balance struct {
	LeaveTypeID   string
	LeaveTypeName string
	Total         int
	Taken         int
	Remaining     int
}

// NewBalance computes the balance; the result may be negative.
func NewBalance(lt LeaveType, taken int) Balance {
	return Balance{
		LeaveTypeID:   lt.ID,
		LeaveTypeName: lt.Name,
		Total:         lt.DefaultDays,
		Taken:         taken,
		Remaining:     lt.DefaultDays - taken,
	}
}

// InclusiveDays returns the number of calendar days from start to end, both included.
// It returns 0 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
