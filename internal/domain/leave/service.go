package leave

import (
	"context"
)

type LeaveService interface {
	// Type
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListMyRecentLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context) ([]LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, req ReviewLeaveRequestRequest) error
	RejectLeaveRequest(ctx context.Context, req ReviewLeaveRequestRequest) error
}

// BalanceService derives remaining entitlements from approved requests
type BalanceService interface {
	GetMyBalance(ctx context.Context, employeeID string) ([]BalanceResponse, error)
}
