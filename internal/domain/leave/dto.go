package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultDays int    `json:"defaultDays"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	errs := validateLeaveTypeFields(r.Name, r.Description, r.DefaultDays)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultDays int    `json:"defaultDays"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.ID) && !validator.IsValidUUID(r.ID) {
		return ErrLeaveTypeNotFound
	}

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave type id is required",
		})
	}
	errs = append(errs, validateLeaveTypeFields(r.Name, r.Description, r.DefaultDays)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLeaveTypeFields(name, description string, defaultDays int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if validator.IsEmpty(description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if defaultDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "defaultDays",
			Message: "defaultDays must be a positive integer",
		})
	}

	return errs
}

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	// Days is optional; when set it must match the inclusive span of the dates.
	Days   int    `json:"days,omitempty"`
	Reason string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveTypeId",
			Message: "leaveTypeId is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must not be before startDate",
			})
		} else if r.Days != 0 && r.Days != InclusiveDays(start, end) {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "days does not match the requested date range",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	if !validator.IsValidUUID(r.LeaveTypeID) {
		return ErrLeaveTypeNotFound
	}
	return nil
}

// Period returns the parsed dates; call only after Validate succeeded.
func (r *CreateLeaveRequestRequest) Period() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type ReviewLeaveRequestRequest struct {
	ID      string  `json:"-"`
	Comment *string `json:"comment,omitempty"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.ID) && !validator.IsValidUUID(r.ID) {
		return ErrLeaveRequestNotFound
	}

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave request id is required",
		})
	}
	if r.Comment != nil && len(*r.Comment) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizedComment drops blank comments so they are stored as NULL.
func (r *ReviewLeaveRequestRequest) NormalizedComment() *string {
	if r.Comment == nil {
		return nil
	}
	c := strings.TrimSpace(*r.Comment)
	if c == "" {
		return nil
	}
	return &c
}

type LeaveTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DefaultDays int       `json:"defaultDays"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		Description: lt.Description,
		DefaultDays: lt.DefaultDays,
		CreatedAt:   lt.CreatedAt,
	}
}

type LeaveRequestResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName *string   `json:"employeeName,omitempty"`
	LeaveTypeID  string    `json:"leaveTypeId"`
	LeaveType    string    `json:"leaveType"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Days         int       `json:"days"`
	Reason       string    `json:"reason"`
	Status       Status    `json:"status"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		LeaveTypeID:  lr.LeaveTypeID,
		LeaveType:    lr.LeaveTypeName,
		StartDate:    lr.StartDate.Format(validator.DateLayout),
		EndDate:      lr.EndDate.Format(validator.DateLayout),
		Days:         lr.Days,
		Reason:       lr.Reason,
		Status:       lr.Status,
		Comment:      lr.Comment,
		CreatedAt:    lr.CreatedAt,
	}
}

type BalanceResponse struct {
	ID        string `json:"id"`
	LeaveType string `json:"leaveType"`
	Total     int    `json:"total"`
	Taken     int    `json:"taken"`
	Remaining int    `json:"remaining"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:        b.LeaveTypeID,
		LeaveType: b.LeaveTypeName,
		Total:     b.Total,
		Taken:     b.Taken,
		Remaining: b.Remaining,
	}
}
