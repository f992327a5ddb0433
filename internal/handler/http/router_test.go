package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-management-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/leave-management-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/leave-management-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/leave-management-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/leave-management-go/internal/service/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type testServer struct {
	t       *testing.T
	store   *memory.Store
	jwt     jwt.Service
	handler http.Handler
}

func newTestServer(t *testing.T, pinger Pinger) *testServer {
	t.Helper()

	store := memory.NewStore()
	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)

	authSvc := authService.NewAuthService(store.Employees(), jwtService)
	requestSvc := leaveService.NewRequestService(store.LeaveTypes(), store.LeaveRequests())

	router := NewRouter(
		RouterConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
			LogLevel:       slog.LevelInfo,
		},
		authSvc,
		pinger,
		Handlers{
			Auth:     NewAuthHandler(authSvc),
			Employee: NewEmployeeHandler(employeeService.NewEmployeeService(store.Employees())),
			Profile:  NewProfileHandler(employeeService.NewProfileService(store.Employees())),
			Leave: NewLeaveHandler(
				leaveService.NewLeaveService(store.LeaveTypes(), store.LeaveRequests(), requestSvc),
				leaveService.NewBalanceCalculator(store.LeaveTypes(), store.LeaveRequests()),
			),
			Dashboard: NewDashboardHandler(dashboardService.NewDashboardService(store.Dashboard())),
		},
	)

	return &testServer{t: t, store: store, jwt: jwtService, handler: router}
}

func (s *testServer) addEmployee(email string, role employee.Role) employee.Employee {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(s.t, err)

	e, err := s.store.Employees().Create(context.Background(), employee.Employee{
		Name:         "User " + email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   "Engineering",
		Position:     "Developer",
	})
	require.NoError(s.t, err)
	return e
}

func (s *testServer) addLeaveType(name string, days int) leave.LeaveType {
	s.t.Helper()
	lt, err := s.store.LeaveTypes().Create(context.Background(), leave.LeaveType{Name: name, Description: name, DefaultDays: days})
	require.NoError(s.t, err)
	return lt
}

func (s *testServer) tokenFor(e employee.Employee) string {
	s.t.Helper()
	token, _, err := s.jwt.Issue(e.ID, e.Role)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLoginThenMe(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	e := s.addEmployee("jane@company.com", employee.RoleEmployee)

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@company.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}](t, rec)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, e.ID, login.User.ID)

	rec = s.do(http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	me := decode[map[string]interface{}](t, rec)
	assert.Equal(t, e.ID, me["id"])
	assert.Equal(t, "employee", me["role"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "passwordHash")
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.addEmployee("jane@company.com", employee.RoleEmployee)

	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@company.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password.", decode[map[string]string](t, rec)["message"])

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "jane@company.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	malformed := httptest.NewRecorder()
	s.handler.ServeHTTP(malformed, req)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
}

var protectedRoutes = []struct{ method, path string }{
	{http.MethodGet, "/api/auth/me"},
	{http.MethodGet, "/api/employees"},
	{http.MethodPost, "/api/employees"},
	{http.MethodPut, "/api/employees/x"},
	{http.MethodDelete, "/api/employees/x"},
	{http.MethodGet, "/api/profile"},
	{http.MethodPut, "/api/profile"},
	{http.MethodPut, "/api/profile/password"},
	{http.MethodGet, "/api/leave-types"},
	{http.MethodPost, "/api/leave-types"},
	{http.MethodPut, "/api/leave-types/x"},
	{http.MethodDelete, "/api/leave-types/x"},
	{http.MethodGet, "/api/leaves"},
	{http.MethodGet, "/api/leaves/recent"},
	{http.MethodPost, "/api/leaves"},
	{http.MethodGet, "/api/leave-balance"},
	{http.MethodGet, "/api/admin/leaves"},
	{http.MethodPut, "/api/admin/leaves/x/approve"},
	{http.MethodPut, "/api/admin/leaves/x/reject"},
	{http.MethodGet, "/api/admin/dashboard"},
}

func TestProtectedRoutesRequireValidToken(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	e := s.addEmployee("admin@company.com", employee.RoleAdmin)

	// Same secret, signed correctly, expired an hour ago.
	_, expired, err := jwtauth.New("HS256", []byte(handlerTestSecret), nil).Encode(map[string]interface{}{
		"id":   e.ID,
		"role": string(e.Role),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	wrongSecret, _, err := jwt.NewJWTService("another-secret", time.Hour).Issue(e.ID, e.Role)
	require.NoError(t, err)

	tokens := map[string]string{
		"missing":      "",
		"expired":      expired,
		"wrong secret": wrongSecret,
		"garbage":      "abc.def.ghi",
	}

	for name, token := range tokens {
		for _, route := range protectedRoutes {
			rec := s.do(route.method, route.path, token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s token: %s %s", name, route.method, route.path)
		}
	}
}

func TestAdminRoutesForbidEmployees(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	token := s.tokenFor(s.addEmployee("jane@company.com", employee.RoleEmployee))

	adminRoutes := []struct{ method, path string }{
		{http.MethodGet, "/api/employees"},
		{http.MethodPost, "/api/employees"},
		{http.MethodPut, "/api/employees/x"},
		{http.MethodDelete, "/api/employees/x"},
		{http.MethodPost, "/api/leave-types"},
		{http.MethodPut, "/api/leave-types/x"},
		{http.MethodDelete, "/api/leave-types/x"},
		{http.MethodGet, "/api/admin/leaves"},
		{http.MethodPut, "/api/admin/leaves/x/approve"},
		{http.MethodPut, "/api/admin/leaves/x/reject"},
		{http.MethodGet, "/api/admin/dashboard"},
	}
	for _, route := range adminRoutes {
		rec := s.do(route.method, route.path, token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
	}

	rec := s.do(http.MethodGet, "/api/leave-types", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletedEmployeeTokenRejected(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	e := s.addEmployee("jane@company.com", employee.RoleEmployee)
	token := s.tokenFor(e)

	require.NoError(t, s.store.Employees().Delete(context.Background(), e.ID))

	rec := s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateLeaveThenList(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	e := s.addEmployee("jane@company.com", employee.RoleEmployee)
	token := s.tokenFor(e)
	annual := s.addLeaveType("Annual Leave", 20)

	rec := s.do(http.MethodPost, "/api/leaves", token, map[string]interface{}{
		"leaveTypeId": annual.ID,
		"startDate":   "2025-03-10",
		"endDate":     "2025-03-12",
		"days":        3,
		"reason":      "Family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[leave.LeaveRequestResponse](t, rec)

	rec = s.do(http.MethodGet, "/api/leaves", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]leave.LeaveRequestResponse](t, rec)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Annual Leave", got.LeaveType)
	assert.Equal(t, "2025-03-10", got.StartDate)
	assert.Equal(t, "2025-03-12", got.EndDate)
	assert.Equal(t, 3, got.Days)
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Equal(t, "Family trip", got.Reason)
	assert.Equal(t, e.ID, got.EmployeeID)

	rec = s.do(http.MethodGet, "/api/leaves/recent", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]leave.LeaveRequestResponse](t, rec), 1)
}

func TestCreateLeaveRejectsBadInput(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	token := s.tokenFor(s.addEmployee("jane@company.com", employee.RoleEmployee))
	annual := s.addLeaveType("Annual Leave", 20)

	rec := s.do(http.MethodPost, "/api/leaves", token, map[string]interface{}{
		"leaveTypeId": annual.ID, "startDate": "2025-03-10", "endDate": "2025-03-12", "days": 7, "reason": "Trip",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/leaves", token, map[string]interface{}{
		"leaveTypeId": annual.ID, "startDate": "10/03/2025", "endDate": "2025-03-12", "reason": "Trip",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/leaves", token, map[string]interface{}{
		"leaveTypeId": "0190a5c4-0000-7000-8000-000000000000", "startDate": "2025-03-10", "endDate": "2025-03-12", "reason": "Trip",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewFlow(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	employeeToken := s.tokenFor(s.addEmployee("jane@company.com", employee.RoleEmployee))
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))
	annual := s.addLeaveType("Annual Leave", 20)

	rec := s.do(http.MethodPost, "/api/leaves", employeeToken, map[string]interface{}{
		"leaveTypeId": annual.ID, "startDate": "2025-03-10", "endDate": "2025-03-12", "reason": "Trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[leave.LeaveRequestResponse](t, rec)

	rec = s.do(http.MethodPut, "/api/admin/leaves/"+created.ID+"/approve", adminToken, map[string]string{"comment": "Have fun"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/admin/leaves", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]leave.LeaveRequestResponse](t, rec)
	require.Len(t, all, 1)
	assert.Equal(t, leave.StatusApproved, all[0].Status)
	require.NotNil(t, all[0].Comment)
	assert.Equal(t, "Have fun", *all[0].Comment)
	require.NotNil(t, all[0].EmployeeName)
	assert.Equal(t, "User jane@company.com", *all[0].EmployeeName)

	rec = s.do(http.MethodPut, "/api/admin/leaves/"+created.ID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/admin/leaves/0190a5c4-0000-7000-8000-000000000000/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/leave-balance", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	balances := decode[[]leave.BalanceResponse](t, rec)
	require.Len(t, balances, 1)
	assert.Equal(t, 20, balances[0].Total)
}

func TestDeleteLeaveTypeWithRequests(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	employeeToken := s.tokenFor(s.addEmployee("jane@company.com", employee.RoleEmployee))
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))
	sick := s.addLeaveType("Sick Leave", 10)

	rec := s.do(http.MethodPost, "/api/leaves", employeeToken, map[string]interface{}{
		"leaveTypeId": sick.ID, "startDate": "2025-03-10", "endDate": "2025-03-10", "reason": "Flu",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodDelete, "/api/leave-types/"+sick.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/leaves", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]leave.LeaveRequestResponse](t, rec))

	rec = s.do(http.MethodDelete, "/api/leave-types/"+sick.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeAdministration(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))

	body := map[string]string{
		"name": "John Smith", "email": "john@company.com", "role": "employee",
		"department": "Finance", "position": "Analyst", "password": "secret123",
	}
	rec := s.do(http.MethodPost, "/api/employees", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]interface{}](t, rec)
	assert.NotContains(t, created, "password")

	rec = s.do(http.MethodPost, "/api/employees", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use.", decode[map[string]string](t, rec)["message"])

	rec = s.do(http.MethodGet, "/api/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 2)

	id := created["id"].(string)
	rec = s.do(http.MethodPut, "/api/employees/"+id, adminToken, map[string]string{
		"name": "John Smith", "email": "john@company.com", "role": "admin",
		"department": "Finance", "position": "Lead",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "admin", decode[map[string]interface{}](t, rec)["role"])

	// password unchanged: login still works with the original one
	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "john@company.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/employees/"+id, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, "/api/employees/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileSelfService(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	e := s.addEmployee("jane@company.com", employee.RoleEmployee)
	token := s.tokenFor(e)

	rec := s.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, employee.ProfileResponse{
		ID: e.ID, Name: e.Name, Email: e.Email, Department: e.Department, Position: e.Position,
	}, decode[employee.ProfileResponse](t, rec))

	rec = s.do(http.MethodPut, "/api/profile/password", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "newsecret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/api/profile/password", token, map[string]string{
		"currentPassword": "password123", "newPassword": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "jane@company.com", "password": "newsecret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.addEmployee("jane@company.com", employee.RoleEmployee)
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))

	rec := s.do(http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, float64(1), body["totalEmployees"])
	for _, key := range []string{"pendingRequests", "approvedLeaves", "rejectedLeaves", "leavesByStatus", "leavesByType", "recentRequests"} {
		assert.Contains(t, body, key)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	rec := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newTestServer(t, stubPinger{err: errors.New("connection refused")})
	rec = down.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))
	s.addLeaveType("Annual Leave", 20)

	cases := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPut, "/api/admin/leaves/not-a-uuid/approve", nil},
		{http.MethodPut, "/api/admin/leaves/not-a-uuid/reject", map[string]string{"comment": "No"}},
		{http.MethodPut, "/api/leave-types/not-a-uuid", map[string]interface{}{
			"name": "Annual Leave", "description": "Paid", "defaultDays": 20,
		}},
		{http.MethodDelete, "/api/leave-types/not-a-uuid", nil},
		{http.MethodPut, "/api/employees/not-a-uuid", map[string]string{
			"name": "Ghost", "email": "ghost@company.com", "role": "employee",
			"department": "None", "position": "None",
		}},
		{http.MethodDelete, "/api/employees/not-a-uuid", nil},
		{http.MethodPost, "/api/leaves", map[string]interface{}{
			"leaveTypeId": "annual", "startDate": "2025-03-10", "endDate": "2025-03-12", "reason": "Trip",
		}},
	}
	for _, tc := range cases {
		rec := s.do(tc.method, tc.path, adminToken, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s: %s", tc.method, tc.path, rec.Body.String())
	}
}

func TestEmailIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	adminToken := s.tokenFor(s.addEmployee("admin@company.com", employee.RoleAdmin))

	body := map[string]string{
		"name": "Jane Smith", "email": "Jane@Company.com", "role": "employee",
		"department": "Finance", "position": "Analyst", "password": "secret123",
	}
	rec := s.do(http.MethodPost, "/api/employees", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "jane@company.com", decode[map[string]interface{}](t, rec)["email"])

	body["email"] = "jane@company.com"
	rec = s.do(http.MethodPost, "/api/employees", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use.", decode[map[string]string](t, rec)["message"])

	rec = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "JANE@company.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
