package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

// RecentRequestsLimit is the size of an employee's "recent requests" list
const RecentRequestsLimit = 5

// RequestService owns the lifecycle of a leave request: submission and review.
type RequestService struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
}

func NewRequestService(leaveTypeRepo leave.LeaveTypeRepository, leaveRequestRepo leave.LeaveRequestRepository) *RequestService {
	return &RequestService{
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
	}
}

// CreateRequest stores a Pending request for req.EmployeeID. The day count is always
// the inclusive span of the dates, whatever the client sent.
func (r *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := r.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, end := req.Period()
	created, err := r.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Days:        leave.InclusiveDays(start, end),
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Approve moves a Pending request to Approved.
func (r *RequestService) Approve(ctx context.Context, req leave.ReviewLeaveRequestRequest) error {
	return r.transition(ctx, req, leave.StatusApproved)
}

// Reject moves a Pending request to Rejected.
func (r *RequestService) Reject(ctx context.Context, req leave.ReviewLeaveRequestRequest) error {
	return r.transition(ctx, req, leave.StatusRejected)
}

func (r *RequestService) transition(ctx context.Context, req leave.ReviewLeaveRequestRequest, to leave.Status) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !leave.StatusPending.CanTransitionTo(to) {
		return leave.ErrInvalidTransition
	}
	return r.leaveRequestRepo.UpdateStatus(ctx, req.ID, leave.StatusPending, to, req.NormalizedComment())
}
