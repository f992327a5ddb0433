package dashboard

import (
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
)

// RecentRequestsLimit is the number of requests shown on the admin dashboard
const RecentRequestsLimit = 6

// ChartPoint is a single pie/bar chart entry
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type RecentRequestResponse struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employeeName"`
	LeaveType    string       `json:"leaveType"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Days         int          `json:"days"`
	Status       leave.Status `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type DashboardResponse struct {
	TotalEmployees  int64                   `json:"totalEmployees"`
	PendingRequests int64                   `json:"pendingRequests"`
	ApprovedLeaves  int64                   `json:"approvedLeaves"`
	RejectedLeaves  int64                   `json:"rejectedLeaves"`
	LeavesByStatus  []ChartPoint            `json:"leavesByStatus"`
	LeavesByType    []ChartPoint            `json:"leavesByType"`
	RecentRequests  []RecentRequestResponse `json:"recentRequests"`
}
