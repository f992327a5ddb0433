package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetMyRecentRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService   leave.LeaveService
	balanceService leave.BalanceService
}

func NewLeaveHandler(leaveService leave.LeaveService, balanceService leave.BalanceService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:   leaveService,
		balanceService: balanceService,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaveTypes)
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	created, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := l.leaveService.DeleteLeaveType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave type deleted", "leave_type_id", id)
	response.SuccessWithMessage(w, "Leave type deleted successfully.")
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), identity.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// GetMyRecentRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRecentRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListMyRecentLeaveRequests(r.Context(), identity.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	// Always the caller; never taken from the body.
	req.EmployeeID = identity.ID

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "leave_request_id", created.ID, "employee_id", identity.ID)
	response.Created(w, created)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListLeaveRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// decodeReview reads the optional {comment} body of an approve/reject call.
func decodeReview(w http.ResponseWriter, r *http.Request, op string) (leave.ReviewLeaveRequestRequest, bool) {
	var req leave.ReviewLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return req, false
	}
	req.ID = chi.URLParam(r, "id")
	return req, true
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeReview(w, r, "ApproveLeaveRequest")
	if !ok {
		return
	}

	if err := l.leaveService.ApproveLeaveRequest(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request approved", "leave_request_id", req.ID)
	response.SuccessWithMessage(w, "Leave request approved successfully.")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeReview(w, r, "RejectLeaveRequest")
	if !ok {
		return
	}

	if err := l.leaveService.RejectLeaveRequest(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request rejected", "leave_request_id", req.ID)
	response.SuccessWithMessage(w, "Leave request rejected successfully.")
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	balances, err := l.balanceService.GetMyBalance(r.Context(), identity.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}
