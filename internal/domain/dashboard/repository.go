package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

// CountByName is one row of a COUNT ... GROUP BY query
type CountByName struct {
	Name  string
	Count int64
}

// RecentRequest is a leave request joined with employee and leave type names
type RecentRequest struct {
	ID           string
	EmployeeName string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	Status       leave.Status
	CreatedAt    time.Time
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	CountEmployeesByRole(ctx context.Context, role employee.Role) (int64, error)
	CountLeavesByStatus(ctx context.Context, status leave.Status) (int64, error)
	// GroupLeavesByStatus returns one row per status that has at least one request
	GroupLeavesByStatus(ctx context.Context) ([]CountByName, error)
	// GroupLeavesByType returns one row per leave type that has at least one request
	GroupLeavesByType(ctx context.Context) ([]CountByName, error)
	RecentRequests(ctx context.Context, limit int) ([]RecentRequest, error)
}
