package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

type dashboardRepository struct {
	s *Store
}

func (r *dashboardRepository) CountEmployeesByRole(ctx context.Context, role employee.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, e := range r.s.employees {
		if e.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *dashboardRepository) CountLeavesByStatus(ctx context.Context, status leave.Status) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, lr := range r.s.leaves {
		if lr.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *dashboardRepository) GroupLeavesByStatus(ctx context.Context) ([]dashboard.CountByName, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.group(func(lr leave.LeaveRequest) string { return string(lr.Status) }), nil
}

func (r *dashboardRepository) GroupLeavesByType(ctx context.Context) ([]dashboard.CountByName, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.group(func(lr leave.LeaveRequest) string { return r.s.leaveTypes[lr.LeaveTypeID].Name }), nil
}

// group counts requests per key, largest first; mu must be held.
func (r *dashboardRepository) group(key func(leave.LeaveRequest) string) []dashboard.CountByName {
	counts := make(map[string]int64)
	for _, lr := range r.s.leaves {
		counts[key(lr)]++
	}

	result := make([]dashboard.CountByName, 0, len(counts))
	for name, count := range counts {
		result = append(result, dashboard.CountByName{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (r *dashboardRepository) RecentRequests(ctx context.Context, limit int) ([]dashboard.RecentRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	requests := make([]leave.LeaveRequest, 0, len(r.s.leaves))
	for _, lr := range r.s.leaves {
		requests = append(requests, lr)
	}
	sort.Slice(requests, func(i, j int) bool {
		return r.s.newer(requests[i], requests[j])
	})
	if limit > 0 && len(requests) > limit {
		requests = requests[:limit]
	}

	recent := make([]dashboard.RecentRequest, 0, len(requests))
	for _, lr := range requests {
		recent = append(recent, dashboard.RecentRequest{
			ID:           lr.ID,
			EmployeeName: r.s.employees[lr.EmployeeID].Name,
			LeaveType:    r.s.leaveTypes[lr.LeaveTypeID].Name,
			StartDate:    lr.StartDate,
			EndDate:      lr.EndDate,
			Days:         lr.Days,
			Status:       lr.Status,
			CreatedAt:    lr.CreatedAt,
		})
	}
	return recent, nil
}
