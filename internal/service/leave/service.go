package leave

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	requestService *RequestService
}

func NewLeaveService(
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	requestService *RequestService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		requestService:         requestService,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	leaveTypes, err := l.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}
	return responses, nil
}

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := l.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:        req.Name,
		Description: req.Description,
		DefaultDays: req.DefaultDays,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return leave.NewLeaveTypeResponse(created), nil
}

// UpdateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	updated, err := l.LeaveTypeRepository.Update(ctx, leave.LeaveType{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		DefaultDays: req.DefaultDays,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(updated), nil
}

// DeleteLeaveType implements leave.LeaveService. Requests of the type are deleted with it.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return l.LeaveTypeRepository.Delete(ctx, id)
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)

	created, err := l.requestService.CreateRequest(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(created), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	return l.listByEmployee(ctx, employeeID, 0)
}

// ListMyRecentLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyRecentLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	return l.listByEmployee(ctx, employeeID, RecentRequestsLimit)
}

func (l *LeaveServiceImpl) listByEmployee(ctx context.Context, employeeID string, limit int) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		resp := leave.NewLeaveRequestResponse(lr)
		// the owner's name is implied on their own history
		resp.EmployeeName = nil
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(lr))
	}
	return responses, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequestRequest) error {
	return l.requestService.Approve(ctx, req)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequestRequest) error {
	return l.requestService.Reject(ctx, req)
}
