package dashboard

import (
	"context"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

func toChartPoints(counts []dashboard.CountByName) []dashboard.ChartPoint {
	points := make([]dashboard.ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, dashboard.ChartPoint{Name: c.Name, Value: c.Count})
	}
	return points
}

// GetDashboard returns combined dashboard data using parallel goroutines.
// The reads are independent; no snapshot is shared between them.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	var resp dashboard.DashboardResponse

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employees (role employee only)
	g.Go(func() error {
		count, err := s.CountEmployeesByRole(gCtx, employee.RoleEmployee)
		resp.TotalEmployees = count
		return err
	})

	// 2-4. Request counters
	g.Go(func() error {
		count, err := s.CountLeavesByStatus(gCtx, leave.StatusPending)
		resp.PendingRequests = count
		return err
	})
	g.Go(func() error {
		count, err := s.CountLeavesByStatus(gCtx, leave.StatusApproved)
		resp.ApprovedLeaves = count
		return err
	})
	g.Go(func() error {
		count, err := s.CountLeavesByStatus(gCtx, leave.StatusRejected)
		resp.RejectedLeaves = count
		return err
	})

	// 5. Pie chart
	g.Go(func() error {
		counts, err := s.GroupLeavesByStatus(gCtx)
		if err != nil {
			return err
		}
		resp.LeavesByStatus = toChartPoints(counts)
		return nil
	})

	// 6. Bar chart
	g.Go(func() error {
		counts, err := s.GroupLeavesByType(gCtx)
		if err != nil {
			return err
		}
		resp.LeavesByType = toChartPoints(counts)
		return nil
	})

	// 7. Recent requests
	g.Go(func() error {
		recent, err := s.RecentRequests(gCtx, dashboard.RecentRequestsLimit)
		if err != nil {
			return err
		}
		resp.RecentRequests = make([]dashboard.RecentRequestResponse, 0, len(recent))
		for _, r := range recent {
			resp.RecentRequests = append(resp.RecentRequests, dashboard.RecentRequestResponse{
				ID:           r.ID,
				EmployeeName: r.EmployeeName,
				LeaveType:    r.LeaveType,
				StartDate:    r.StartDate.Format(validator.DateLayout),
				EndDate:      r.EndDate.Format(validator.DateLayout),
				Days:         r.Days,
				Status:       r.Status,
				CreatedAt:    r.CreatedAt,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &resp, nil
}
