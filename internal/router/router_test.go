package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/handler"
	"github.com/campusly/college-management/internal/middleware"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository/memory"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, model.Principal, model.AuditAction, model.AuditEntity, string) {}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	engine     *gin.Engine
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T, pinger stubPinger) *testServer {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:            gin.TestMode,
		JWTSecret:          "router-secret",
		JWTExpiry:          time.Hour,
		BcryptCost:         4,
		LoginRatePerMinute: 100,
	}
	log := zerolog.Nop()

	departments := memory.NewDepartmentStore()
	students := memory.NewStudentStore()
	teachers := memory.NewTeacherStore()
	users := memory.NewUserStore()

	relations := service.NewDepartmentRelations(departments, students, teachers, service.NewLocalLocker(time.Second), log)
	authService := service.NewAuthService(cfg, users)

	ctx := context.Background()
	_, err := authService.CreateUser(ctx, "admin", "admin-pass", []model.Role{model.RoleAdmin})
	require.NoError(t, err)
	_, err = authService.CreateUser(ctx, "viewer", "viewer-pass", []model.Role{model.RoleUser})
	require.NoError(t, err)

	limiterCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	handlers := &Handlers{
		Auth:       handler.NewAuthHandler(authService, log),
		Student:    handler.NewStudentHandler(service.NewStudentService(students, relations, nopAuditor{}, log), log),
		Teacher:    handler.NewTeacherHandler(service.NewTeacherService(teachers, relations, nopAuditor{}, log), log),
		Department: handler.NewDepartmentHandler(service.NewDepartmentService(departments, relations, nopAuditor{}, log), log),
		Health:     handler.NewHealthHandler(pinger, log),
	}
	engine := SetupRouter(authService, handlers,
		middleware.NewRateLimiter(limiterCtx, cfg.LoginRatePerMinute, time.Minute), cfg, log)

	s := &testServer{engine: engine}
	s.adminToken = s.login(t, "admin", "admin-pass")
	s.userToken = s.login(t, "viewer", "viewer-pass")
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/cm/auth/login", "", model.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	return decode[response.ErrorResponse](t, w).Error.Code
}

func (s *testServer) seedDepartment(t *testing.T, id, name string) {
	t.Helper()
	w := s.do(http.MethodPost, "/cm/d/create", s.adminToken, model.CreateDepartmentRequest{
		DepartmentID: id, DepartmentName: name, ShortCode: name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) seedStudent(t *testing.T, id, departmentID string, age int) {
	t.Helper()
	w := s.do(http.MethodPost, "/cm/s/create", s.adminToken, model.CreateStudentRequest{
		StudentID: id, RollNumber: "R" + id, Name: "Student " + id, Age: age,
		Branch: model.BranchCSE, DepartmentID: departmentID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestStudentEndpoints(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.seedDepartment(t, "1", "CSE")
	s.seedStudent(t, "1", "1", 20)
	s.seedStudent(t, "2", "1", 21)

	w := s.do(http.MethodGet, "/cm/get/s/1", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[model.Student](t, w)
	assert.Equal(t, "R1", got.RollNumber)
	assert.Equal(t, model.BranchCSE, got.Branch)

	w = s.do(http.MethodGet, "/cm/get/s/get-all", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Student](t, w), 2)

	w = s.do(http.MethodGet, "/cm/get/s/age/21", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	byAge := decode[[]model.Student](t, w)
	require.Len(t, byAge, 1)
	assert.Equal(t, "2", byAge[0].StudentID)

	w = s.do(http.MethodGet, "/cm/get/s/age/abc", s.userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidID, errCode(t, w))

	w = s.do(http.MethodGet, "/cm/get/s/page?page=0&size=1", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Student](t, w), 1)

	w = s.do(http.MethodGet, "/cm/get/s/page?page=9", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/cm/get/s/page?page=4611686018427387904&size=10", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/cm/get/s/page?size=x", s.userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/cm/s/update/1", s.adminToken, model.UpdateStudentRequest{
		Name: "Renamed", Age: 30, DepartmentID: "1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode[model.Student](t, w).Name)

	w = s.do(http.MethodPut, "/cm/s/update/404", s.adminToken, model.UpdateStudentRequest{
		Name: "X", DepartmentID: "1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(http.MethodDelete, "/cm/s/delete/1", s.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/cm/get/s/1", s.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStudentCreateErrors(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.seedDepartment(t, "1", "CSE")

	w := s.do(http.MethodPost, "/cm/s/create", s.adminToken, model.CreateStudentRequest{
		StudentID: "1", Name: "A", Branch: "BIOLOGY", DepartmentID: "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrBranchInvalid, errCode(t, w))

	w = s.do(http.MethodPost, "/cm/s/create", s.adminToken, model.CreateStudentRequest{
		StudentID: "1", Name: "A", Branch: model.BranchIT, DepartmentID: "missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/cm/s/create", s.adminToken, model.CreateStudentRequest{
		StudentID: "1", Name: "A", Branch: "BIOLOGY", DepartmentID: "missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(http.MethodPost, "/cm/s/create", s.adminToken, map[string]any{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[response.ErrorResponse](t, w)
	assert.Equal(t, response.ErrValidation, body.Error.Code)
	assert.Contains(t, body.Error.Fields, "studentId")

	s.seedStudent(t, "1", "1", 20)
	w = s.do(http.MethodPost, "/cm/s/create", s.adminToken, model.CreateStudentRequest{
		StudentID: "1", Name: "A", Branch: model.BranchIT, DepartmentID: "1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeacherEndpoints(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.seedDepartment(t, "1", "CSE")

	w := s.do(http.MethodPost, "/cm/t/create", s.adminToken, model.CreateTeacherRequest{
		TeacherID: "T1", Name: "Ada", Age: 40, DepartmentID: "1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/cm/get/t/T1", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode[model.Teacher](t, w).Name)

	w = s.do(http.MethodGet, "/cm/get/age?age=40", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Teacher](t, w), 1)

	w = s.do(http.MethodGet, "/cm/get/age", s.userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/cm/get/t/get-all", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Teacher](t, w), 1)

	w = s.do(http.MethodGet, "/cm/get/t/page?page=0&size=5", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Teacher](t, w), 1)

	w = s.do(http.MethodGet, "/cm/get/t/page?page=9223372036854775807", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodPut, "/cm/t/update/T1", s.adminToken, model.UpdateTeacherRequest{
		Name: "Ada L", Age: 41, DepartmentID: "1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/cm/t/delete/T1", s.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, "/cm/t/delete/T1", s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentEndpoints(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.seedDepartment(t, "2", "ECE")
	s.seedDepartment(t, "1", "CSE")
	s.seedStudent(t, "S1", "1", 19)

	w := s.do(http.MethodPost, "/cm/d/create", s.adminToken, model.CreateDepartmentRequest{
		DepartmentID: "1", DepartmentName: "Dup",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, response.ErrConflict, errCode(t, w))

	w = s.do(http.MethodGet, "/cm/d/1", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dept := decode[model.DepartmentDetail](t, w)
	require.Len(t, dept.Students, 1)
	assert.Equal(t, "S1", dept.Students[0].StudentID)

	w = s.do(http.MethodGet, "/cm/d/2", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["students"]))
	assert.JSONEq(t, `[]`, string(raw["teachers"]))
	assert.JSONEq(t, `"ECE"`, string(raw["departmentName"]))

	w = s.do(http.MethodGet, "/cm/d/missing", s.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(http.MethodGet, "/cm/d/1/students", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Student](t, w), 1)

	w = s.do(http.MethodGet, "/cm/d/1/teachers", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/cm/get/d/sort/departmentName", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sorted := decode[[]model.Department](t, w)
	require.Len(t, sorted, 2)
	assert.Equal(t, "CSE", sorted[0].DepartmentName)
	assert.Equal(t, "ECE", sorted[1].DepartmentName)

	w = s.do(http.MethodGet, "/cm/get/d/get-all", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Department](t, w), 2)

	w = s.do(http.MethodGet, "/cm/d/page?page=0&size=1", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Department](t, w), 1)

	w = s.do(http.MethodPut, "/cm/d/update/1", s.adminToken, model.UpdateDepartmentRequest{
		DepartmentName: "Computer Science", AvailableOnline: true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[model.Department](t, w).AvailableOnline)

	w = s.do(http.MethodDelete, "/cm/d/delete/2", s.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, "/cm/d/delete/2", s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	w := s.do(http.MethodGet, "/cm/get/s/get-all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrTokenRequired, errCode(t, w))

	w = s.do(http.MethodPost, "/cm/d/create", s.userToken, model.CreateDepartmentRequest{
		DepartmentID: "1", DepartmentName: "CSE",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, response.ErrForbidden, errCode(t, w))

	w = s.do(http.MethodPost, "/cm/auth/login", "", model.LoginRequest{Username: "admin", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrInvalidCredentials, errCode(t, w))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestServer(t, stubPinger{err: errors.New("redis down")})
	w = down.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUnknownRouteIsEmpty404(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	w := s.do(http.MethodGet, "/cm/nope", s.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}
