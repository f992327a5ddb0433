// Package memory holds map-backed repositories with the same observable behavior as
// the PostgreSQL ones: unique emails, cascading deletes and conditional status writes.
// Service and handler tests run against it.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	employees  map[string]employee.Employee
	leaveTypes map[string]leave.LeaveType
	leaves     map[string]leave.LeaveRequest

	// insertion order, used to break created_at ties
	order map[string]int64
	next  int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		leaveTypes: make(map[string]leave.LeaveType),
		leaves:     make(map[string]leave.LeaveRequest),
		order:      make(map[string]int64),
		now:        time.Now,
	}
}

// SetClock replaces the source of created_at timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (s *Store) LeaveTypes() leave.LeaveTypeRepository {
	return &leaveTypeRepository{s: s}
}

func (s *Store) LeaveRequests() leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (s *Store) Dashboard() dashboard.DashboardRepository {
	return &dashboardRepository{s: s}
}

// newID must be called with mu held.
func (s *Store) newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	s.next++
	s.order[id.String()] = s.next
	return id.String(), nil
}

// newer reports whether a was created after b.
func (s *Store) newer(a, b leave.LeaveRequest) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return s.order[a.ID] > s.order[b.ID]
}
