package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.DefaultDays, &lt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, err
}

// Create implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("generate leave type id: %w", err)
	}

	query := `
		INSERT INTO leave_types (id, name, description, default_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, default_days, created_at
	`
	return scanLeaveType(q.QueryRow(ctx, query,
		id.String(), leaveType.Name, leaveType.Description, leaveType.DefaultDays,
	))
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	if !validID(id) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, name, description, default_days, created_at
		FROM leave_types
		WHERE id = $1
	`
	return scanLeaveType(q.QueryRow(ctx, query, id))
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, name, description, default_days, created_at
		FROM leave_types
		ORDER BY name, id
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaveTypes := []leave.LeaveType{}
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, lt)
	}
	return leaveTypes, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	if !validID(leaveType.ID) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	q := GetQuerier(ctx, l.db)
	query := `
		UPDATE leave_types
		SET name = $2, description = $3, default_days = $4
		WHERE id = $1
		RETURNING id, name, description, default_days, created_at
	`
	return scanLeaveType(q.QueryRow(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.Description, leaveType.DefaultDays,
	))
}

// Delete implements leave.LeaveTypeRepository. Requests of this type are removed by cascade.
func (l *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return leave.ErrLeaveTypeNotFound
	}
	q := GetQuerier(ctx, l.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

// Count implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, l.db)
	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_types`).Scan(&count)
	return count, err
}
