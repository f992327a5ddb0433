package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

type leaveTypeRepository struct {
	s *Store
}

func (r *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := r.s.newID()
	if err != nil {
		return leave.LeaveType{}, err
	}
	leaveType.ID = id
	leaveType.CreatedAt = r.s.now()
	r.s.leaveTypes[id] = leaveType
	return leaveType, nil
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lt, ok := r.s.leaveTypes[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	leaveTypes := make([]leave.LeaveType, 0, len(r.s.leaveTypes))
	for _, lt := range r.s.leaveTypes {
		leaveTypes = append(leaveTypes, lt)
	}
	sort.Slice(leaveTypes, func(i, j int) bool {
		if leaveTypes[i].Name != leaveTypes[j].Name {
			return leaveTypes[i].Name < leaveTypes[j].Name
		}
		return leaveTypes[i].ID < leaveTypes[j].ID
	})
	return leaveTypes, nil
}

func (r *leaveTypeRepository) Update(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.leaveTypes[leaveType.ID]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	current.Name = leaveType.Name
	current.Description = leaveType.Description
	current.DefaultDays = leaveType.DefaultDays
	r.s.leaveTypes[leaveType.ID] = current
	return current, nil
}

func (r *leaveTypeRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leaveTypes[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.s.leaveTypes, id)
	for leaveID, lr := range r.s.leaves {
		if lr.LeaveTypeID == id {
			delete(r.s.leaves, leaveID)
		}
	}
	return nil
}

func (r *leaveTypeRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.leaveTypes)), nil
}

type leaveRequestRepository struct {
	s *Store
}

// hydrate fills the joined names; mu must be held.
func (r *leaveRequestRepository) hydrate(lr leave.LeaveRequest) leave.LeaveRequest {
	lr.LeaveTypeName = r.s.leaveTypes[lr.LeaveTypeID].Name
	name := r.s.employees[lr.EmployeeID].Name
	lr.EmployeeName = &name
	if lr.Comment != nil {
		comment := *lr.Comment
		lr.Comment = &comment
	}
	return lr
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leaveTypes[request.LeaveTypeID]; !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
	}
	if _, ok := r.s.employees[request.EmployeeID]; !ok {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
	}

	id, err := r.s.newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.ID = id
	request.CreatedAt = r.s.now()
	request.LeaveTypeName = ""
	request.EmployeeName = nil
	r.s.leaves[id] = request
	return r.hydrate(request), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lr, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.hydrate(lr), nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	requests := r.sorted(func(lr leave.LeaveRequest) bool { return lr.EmployeeID == employeeID })
	if limit > 0 && len(requests) > limit {
		requests = requests[:limit]
	}
	return requests, nil
}

func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(leave.LeaveRequest) bool { return true }), nil
}

// sorted returns the matching requests newest first; mu must be held.
func (r *leaveRequestRepository) sorted(match func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	requests := []leave.LeaveRequest{}
	for _, lr := range r.s.leaves {
		if match(lr) {
			requests = append(requests, r.hydrate(lr))
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return r.s.newer(requests[i], requests[j])
	})
	return requests
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.Status, comment *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lr, ok := r.s.leaves[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if lr.Status != from {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	lr.Status = to
	lr.Comment = nil
	if comment != nil {
		c := *comment
		lr.Comment = &c
	}
	r.s.leaves[id] = lr
	return nil
}

func (r *leaveRequestRepository) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := 0
	for _, lr := range r.s.leaves {
		if lr.EmployeeID == employeeID &&
			lr.LeaveTypeID == leaveTypeID &&
			lr.Status == leave.StatusApproved &&
			lr.StartDate.Year() == year {
			total += lr.Days
		}
	}
	return total, nil
}
