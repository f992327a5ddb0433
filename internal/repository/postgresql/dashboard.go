package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployeesByRole counts employees holding role
func (r *dashboardRepositoryImpl) CountEmployeesByRole(ctx context.Context, role employee.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountLeavesByStatus counts leave requests currently in status
func (r *dashboardRepositoryImpl) CountLeavesByStatus(ctx context.Context, status leave.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leaves: %w", err)
	}
	return count, nil
}

// GroupLeavesByStatus returns request counts per status, largest first
func (r *dashboardRepositoryImpl) GroupLeavesByStatus(ctx context.Context) ([]dashboard.CountByName, error) {
	query := `
		SELECT status, COUNT(*)
		FROM leaves
		GROUP BY status
		ORDER BY COUNT(*) DESC, status
	`
	return r.groupCounts(ctx, query)
}

// GroupLeavesByType returns request counts per leave type name, largest first
func (r *dashboardRepositoryImpl) GroupLeavesByType(ctx context.Context) ([]dashboard.CountByName, error) {
	query := `
		SELECT lt.name, COUNT(*)
		FROM leaves l
		JOIN leave_types lt ON lt.id = l.leave_type_id
		GROUP BY lt.id, lt.name
		ORDER BY COUNT(*) DESC, lt.name
	`
	return r.groupCounts(ctx, query)
}

func (r *dashboardRepositoryImpl) groupCounts(ctx context.Context, query string) ([]dashboard.CountByName, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to group leaves: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dashboard.CountByName, error) {
		var c dashboard.CountByName
		err := row.Scan(&c.Name, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan leave counts: %w", err)
	}
	return counts, nil
}

// RecentRequests returns the newest requests with employee and leave type names
func (r *dashboardRepositoryImpl) RecentRequests(ctx context.Context, limit int) ([]dashboard.RecentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, e.name, lt.name, l.start_date, l.end_date, l.days, l.status, l.created_at
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		JOIN leave_types lt ON lt.id = l.leave_type_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent requests: %w", err)
	}

	recent, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dashboard.RecentRequest, error) {
		var rr dashboard.RecentRequest
		err := row.Scan(&rr.ID, &rr.EmployeeName, &rr.LeaveType, &rr.StartDate, &rr.EndDate, &rr.Days, &rr.Status, &rr.CreatedAt)
		return rr, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recent requests: %w", err)
	}
	return recent, nil
}
