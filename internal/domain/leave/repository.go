package leave

import (
	"context"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// LeaveRequestRepository - interface for leaves table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// ListByEmployee returns newest first; limit <= 0 means no limit.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	// UpdateStatus moves a request out of from into to in a single conditional write.
	// It returns ErrLeaveRequestNotFound when the id is unknown and
	// ErrLeaveRequestAlreadyProcessed when the request is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to Status, comment *string) error
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
}
