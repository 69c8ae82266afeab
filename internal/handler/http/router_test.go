package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	analyticsService "github.com/cmlabs-hris/tuition-backend-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/tuition-backend-go/internal/service/attendance"
	feeService "github.com/cmlabs-hris/tuition-backend-go/internal/service/fee"
	payrollService "github.com/cmlabs-hris/tuition-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/tuition-backend-go/internal/service/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	*httptest.Server
	jwt jwt.Service
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	store := memory.NewStore()
	tutorID := "tutor-1"
	store.AddClass(roster.Class{ID: "class-1", Name: "Grade 9"})
	store.AddTutor(roster.Tutor{ID: tutorID, FullName: "Sari", BaseSalary: decimal.NewFromInt(50000), IsActive: true})
	store.AddSubject(roster.Subject{ID: "math", ClassID: "class-1", Name: "Math", TutorID: &tutorID, MonthlyFee: decimal.NewFromInt(1000)})
	store.AddStudent(roster.Student{ID: "st-1", FullName: "Ana", IsActive: true})
	store.Enroll("st-1", "math")

	m := metrics.New()
	scheduleRepo := memory.NewScheduleRepository(store)
	rosterRepo := memory.NewRosterRepository(store)
	feeRepo := memory.NewFeeRepository(store)
	payrollRepo := memory.NewPayrollRepository(store)

	handlers := Handlers{
		Schedule:   NewScheduleHandler(scheduleService.NewScheduleService(scheduleRepo, rosterRepo, m)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(memory.NewAttendanceRepository(store), scheduleRepo, rosterRepo, m)),
		Fee:        NewFeeHandler(feeService.NewFeeService(feeRepo, rosterRepo, m)),
		Salary:     NewSalaryHandler(payrollService.NewPayrollService(payrollRepo, rosterRepo, m)),
		Analytics:  NewAnalyticsHandler(analyticsService.NewAnalyticsService(memory.NewAnalyticsRepository(store), feeRepo, payrollRepo)),
	}

	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour)
	router := NewRouter(jwtSvc, handlers, RouterOptions{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelError,
		Metrics:        m.Handler(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return testServer{Server: srv, jwt: jwtSvc}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (s testServer) do(t *testing.T, actor *user.Actor, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(b)
		}
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, _, err := s.jwt.GenerateAccessToken(*actor)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

var (
	adminActor   = &user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
	tutorActor   = &user.Actor{UserID: "tutor-1", Role: user.RoleTutor}
	studentActor = &user.Actor{UserID: "st-1", Role: user.RoleStudent}
)

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, nil, http.MethodGet, "/api/v1/schedules", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestRouter_RoleGates(t *testing.T) {
	srv := newTestServer(t)

	code, _ := srv.do(t, tutorActor, http.MethodPost, "/api/v1/fees/generate", map[string]string{"month": "2024-03"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = srv.do(t, studentActor, http.MethodPost, "/api/v1/schedules", map[string]string{})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = srv.do(t, studentActor, http.MethodGet, "/api/v1/schedules", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_ScheduleAndAttendanceFlow(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, tutorActor, http.MethodPost, "/api/v1/schedules", map[string]string{
		"class_id": "class-1", "subject_id": "math", "tutor_id": "tutor-1",
		"date": "2024-03-11", "start_time": "09:00", "end_time": "10:30",
	})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Upcoming", created.Status)

	code, env = srv.do(t, tutorActor, http.MethodPost, "/api/v1/schedules/"+created.ID+"/attendance", map[string]interface{}{
		"records": []map[string]string{{"student_id": "st-1", "status": "Late"}},
	})
	require.Equal(t, http.StatusOK, code)
	var marked struct {
		Updated        int    `json:"updated"`
		ScheduleStatus string `json:"schedule_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &marked))
	assert.Equal(t, 1, marked.Updated)
	assert.Equal(t, "Completed", marked.ScheduleStatus)

	code, env = srv.do(t, adminActor, http.MethodGet, "/api/v1/analytics?date=2024-03-11", nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		TodayPercentage int `json:"today_percentage"`
		WeeklyOverview  []struct {
			HasData bool `json:"has_data"`
		} `json:"weekly_overview"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, 100, dash.TodayPercentage)
	assert.Len(t, dash.WeeklyOverview, 7)
	assert.True(t, dash.WeeklyOverview[0].HasData)
}

func TestRouter_ValidationAndBadBody(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, tutorActor, http.MethodPost, "/api/v1/schedules", map[string]string{
		"class_id": "class-1", "subject_id": "math", "tutor_id": "tutor-1",
		"date": "2024-03-11", "start_time": "09:00", "end_time": "08:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "end_time")

	code, _ = srv.do(t, adminActor, http.MethodPost, "/api/v1/fees/generate", "not json")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_FeeLifecycle(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, adminActor, http.MethodPost, "/api/v1/fees/generate", map[string]string{"month": "2024-03"})
	require.Equal(t, http.StatusOK, code)
	var result struct {
		Created int `json:"created"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Created)

	code, env = srv.do(t, adminActor, http.MethodGet, "/api/v1/fees?month=2024-03", nil)
	require.Equal(t, http.StatusOK, code)
	var fees []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fees))
	require.Len(t, fees, 1)

	code, _ = srv.do(t, adminActor, http.MethodPost, "/api/v1/fees/"+fees[0].ID+"/pay", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = srv.do(t, adminActor, http.MethodPost, "/api/v1/fees/"+fees[0].ID+"/pay", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	code, env = srv.do(t, adminActor, http.MethodGet, "/api/v1/fees/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_SalarySummaryNeedsMonth(t *testing.T) {
	srv := newTestServer(t)

	code, _ := srv.do(t, adminActor, http.MethodGet, "/api/v1/salaries/summary", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(t, adminActor, http.MethodPost, "/api/v1/salaries/generate", map[string]string{"month": "2024-03"})
	require.Equal(t, http.StatusOK, code)

	code, env := srv.do(t, adminActor, http.MethodGet, "/api/v1/salaries/summary?month=2024-03", nil)
	require.Equal(t, http.StatusOK, code)
	var summary struct {
		EntryCount int `json:"entry_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.EntryCount)
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
