package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestSelect = `
	SELECT l.id, l.employee_id, l.leave_type_id, l.start_date, l.end_date, l.days,
		   l.reason, l.status, l.comment, l.created_at,
		   lt.name, e.name
	FROM leaves l
	JOIN leave_types lt ON lt.id = l.leave_type_id
	JOIN employees e ON e.id = l.employee_id
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var employeeName string
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.Days,
		&lr.Reason, &lr.Status, &lr.Comment, &lr.CreatedAt,
		&lr.LeaveTypeName, &employeeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.EmployeeName = &employeeName
	return lr, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if !validID(request.EmployeeID) {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
	}
	if !validID(request.LeaveTypeID) {
		return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
	}
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leaves (id, employee_id, leave_type_id, start_date, end_date, days, reason, status, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = q.Exec(ctx, query,
		id.String(), request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Days,
		request.Reason, request.Status, request.Comment,
	)
	if err != nil {
		if constraintViolation(err, pgForeignKeyViolation, "leaves_leave_type_id_fkey") {
			return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
		}
		if constraintViolation(err, pgForeignKeyViolation, "leaves_employee_id_fkey") {
			return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)
	return scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE l.id = $1`, id))
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]leave.LeaveRequest, error) {
	if !validID(employeeID) {
		return []leave.LeaveRequest{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE l.employee_id = $1 ORDER BY l.created_at DESC, l.id DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, leaveRequestSelect+` ORDER BY l.created_at DESC, l.id DESC`)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.Status, comment *string) error {
	if !validID(id) {
		return leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leaves
		SET status = $3, comment = $4
		WHERE id = $1 AND status = $2
	`
	commandTag, err := q.Exec(ctx, query, id, from, to, comment)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leaves WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return leave.ErrLeaveRequestNotFound
	}
	return leave.ErrLeaveRequestAlreadyProcessed
}

// SumApprovedDays implements leave.LeaveRequestRepository. A request counts toward
// the year its start date falls in.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	if !validID(employeeID) || !validID(leaveTypeID) {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status = $3
		  AND EXTRACT(YEAR FROM start_date) = $4
	`
	var total int
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, leave.StatusApproved, year).Scan(&total)
	return total, err
}
