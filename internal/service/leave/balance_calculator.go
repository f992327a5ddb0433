package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSums bounds the per-type queries issued for one balance lookup
const maxConcurrentSums = 4

// BalanceCalculator derives remaining entitlements from approved requests of the
// current calendar year. Nothing is cached; every call reads the store.
type BalanceCalculator struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	now              func() time.Time
}

func NewBalanceCalculator(leaveTypeRepo leave.LeaveTypeRepository, leaveRequestRepo leave.LeaveRequestRepository) *BalanceCalculator {
	return &BalanceCalculator{
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
		now:              time.Now,
	}
}

// Calculate returns one balance per leave type, in leave type name order.
func (c *BalanceCalculator) Calculate(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	leaveTypes, err := c.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	year := c.now().Year()
	balances := make([]leave.Balance, len(leaveTypes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSums)
	for i, lt := range leaveTypes {
		i, lt := i, lt
		g.Go(func() error {
			taken, err := c.leaveRequestRepo.SumApprovedDays(gCtx, employeeID, lt.ID, year)
			if err != nil {
				return fmt.Errorf("failed to sum approved days for %s: %w", lt.Name, err)
			}
			balances[i] = leave.NewBalance(lt, taken)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

// GetMyBalance implements leave.BalanceService.
func (c *BalanceCalculator) GetMyBalance(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := c.Calculate(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.NewBalanceResponse(b))
	}
	return responses, nil
}
