package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetocure/admin-api/internal/config"
	"github.com/meetocure/admin-api/internal/repository/memory"
	"github.com/meetocure/admin-api/pkg/metrics"
)

type response struct {
	Code    int
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Fields  map[string]interface{}
}

func (r response) object(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &out), "data: %s", r.Data)
	return out
}

func (r response) list(t *testing.T) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &out), "data: %s", r.Data)
	return out
}

type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", ExposeErrors: true, MaxBodyBytes: 1 << 20},
		Redis:  config.RedisConfig{Channel: "test.events"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Metrics:  config.MetricsConfig{Enabled: true, Namespace: "test"},
	}
	reg := prometheus.NewRegistry()
	a := New(Options{
		Config:   cfg,
		Repos:    memory.New(nil).Repositories(),
		Registry: reg,
		Metrics:  metrics.New("test", reg),
	})
	return &testServer{handler: a.Router.Engine()}
}

func (s *testServer) makeRequest(t *testing.T, method, path string, body interface{}) response {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	resp := response{Code: w.Code}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Fields))
	}
	return resp
}

func TestPatientRegistration(t *testing.T) {
	s := newTestServer(t)

	created := s.makeRequest(t, http.MethodPost, "/admin/patients/register", map[string]string{
		"phone": "9876543210",
		"name":  "Asha",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Message)
	assert.True(t, created.Success)
	patientID := created.object(t)["patientId"].(string)

	dup := s.makeRequest(t, http.MethodPost, "/admin/patients", map[string]string{"phone": "9876543210"})
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.False(t, dup.Success)
	assert.Equal(t, "Patient with this phone number already exists", dup.Message)

	got := s.makeRequest(t, http.MethodGet, "/admin/patients/"+patientID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "Asha", got.object(t)["name"])

	list := s.makeRequest(t, http.MethodGet, "/admin/patients", nil)
	require.Equal(t, http.StatusOK, list.Code)
	require.NotNil(t, list.Count)
	assert.Equal(t, 1, *list.Count)
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t)

	created := s.makeRequest(t, http.MethodPost, "/admin/appointments", map[string]string{
		"appointment_date": "2026-05-04",
		"appointment_time": "10:00 AM",
		"appointment_type": "Consultation",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Message)
	id := created.object(t)["id"].(string)

	archived := s.makeRequest(t, http.MethodPatch, "/admin/appointments/"+id+"/status", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, archived.Code)
	assert.Equal(t, "Invalid status. Must be one of: pending, confirmed, completed, cancelled", archived.Message)

	confirmed := s.makeRequest(t, http.MethodPatch, "/admin/appointments/"+id+"/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, confirmed.Code)
	assert.Equal(t, "confirmed", confirmed.object(t)["status"])

	byDate := s.makeRequest(t, http.MethodGet, "/admin/appointments?date=2026-05-04", nil)
	require.Equal(t, http.StatusOK, byDate.Code)
	assert.Len(t, byDate.list(t), 1)
	assert.Equal(t, "2026-05-04", byDate.Fields["date"])

	all := s.makeRequest(t, http.MethodGet, "/admin/appointments", nil)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Nil(t, all.Fields["date"])

	deleted := s.makeRequest(t, http.MethodDelete, "/admin/appointments/"+id, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	gone := s.makeRequest(t, http.MethodGet, "/admin/appointments/"+id, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
	assert.Equal(t, "Appointment not found", gone.Message)
}

func TestEmptyDashboard(t *testing.T) {
	s := newTestServer(t)

	resp := s.makeRequest(t, http.MethodGet, "/admin/stats/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	data := resp.object(t)
	appointments := data["appointments"].(map[string]interface{})
	assert.Equal(t, 0.0, appointments["successRate"])
	assert.Equal(t, 0.0, appointments["today"])
	overview := data["overview"].(map[string]interface{})
	assert.Equal(t, 0.0, overview["totalPatients"])
	insights := data["insights"].(map[string]interface{})
	assert.Empty(t, insights["topSpecialties"])
}

func TestDoctorWithoutVerificationIsDeleted(t *testing.T) {
	s := newTestServer(t)

	created := s.makeRequest(t, http.MethodPost, "/admin/doctors", map[string]string{
		"email":        "dr.rao@clinic.in",
		"password":     "secret1",
		"mobileNumber": "9000000001",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Message)
	id := created.object(t)["_id"].(string)
	assert.Nil(t, created.object(t)["verificationDetails"])

	deleted := s.makeRequest(t, http.MethodDelete, "/admin/doctors/"+id, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, "Doctor deleted successfully", deleted.Message)

	gone := s.makeRequest(t, http.MethodGet, "/admin/doctors/"+id, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestHospitalWithDoctorsCannotBeDeleted(t *testing.T) {
	s := newTestServer(t)

	hospital := s.makeRequest(t, http.MethodPost, "/admin/hospitals", map[string]string{
		"email":        "desk@citycare.in",
		"password":     "secret1",
		"hospitalName": "City Care",
		"address":      "12 MG Road",
		"contact":      "080-123",
	})
	require.Equal(t, http.StatusCreated, hospital.Code, hospital.Message)
	hospitalID := hospital.object(t)["id"].(string)

	doctor := s.makeRequest(t, http.MethodPost, "/admin/doctors", map[string]string{
		"email":        "dr.rao@clinic.in",
		"password":     "secret1",
		"mobileNumber": "9000000001",
	})
	require.Equal(t, http.StatusCreated, doctor.Code)
	doctorID := doctor.object(t)["_id"].(string)

	linked := s.makeRequest(t, http.MethodPost, "/admin/hospitals/"+hospitalID+"/doctors/"+doctorID, nil)
	require.Equal(t, http.StatusOK, linked.Code, linked.Message)

	blocked := s.makeRequest(t, http.MethodDelete, "/admin/hospitals/"+hospitalID, nil)
	assert.Equal(t, http.StatusBadRequest, blocked.Code)
	assert.Equal(t, 1.0, blocked.Fields["doctorsCount"])

	still := s.makeRequest(t, http.MethodGet, "/admin/hospitals/"+hospitalID, nil)
	require.Equal(t, http.StatusOK, still.Code)
	assert.Len(t, still.object(t)["docters"], 1)

	unlinked := s.makeRequest(t, http.MethodDelete, "/admin/hospitals/"+hospitalID+"/doctors/"+doctorID, nil)
	require.Equal(t, http.StatusOK, unlinked.Code)
	deleted := s.makeRequest(t, http.MethodDelete, "/admin/hospitals/"+hospitalID, nil)
	assert.Equal(t, http.StatusOK, deleted.Code)
}

func TestOversizedBodyWithoutLength(t *testing.T) {
	s := newTestServer(t)

	body := `{"phone":"9876543210","name":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/patients/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Request body exceeds 1048576 bytes"}`, w.Body.String())

	list := s.makeRequest(t, http.MethodGet, "/admin/patients", nil)
	require.NotNil(t, list.Count)
	assert.Equal(t, 0, *list.Count)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	missing := s.makeRequest(t, http.MethodPost, "/admin/login", map[string]string{"email": "ops@meetocure.com"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "Email and password are required", missing.Message)

	badJSON := s.makeRequest(t, http.MethodPost, "/admin/register", "not an object")
	assert.Equal(t, http.StatusBadRequest, badJSON.Code)
	assert.Equal(t, "Email and password are required", badJSON.Message)

	registered := s.makeRequest(t, http.MethodPost, "/admin/register", map[string]string{
		"email": "ops@meetocure.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, registered.Code)

	bad := s.makeRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email": "ops@meetocure.com", "password": "wrong1",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	ok := s.makeRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email": "ops@meetocure.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, ok.Code)
	user := ok.object(t)
	assert.Equal(t, "ops@meetocure.com", user["email"])
	assert.NotContains(t, user, "password")
}

func TestSettings(t *testing.T) {
	s := newTestServer(t)

	got := s.makeRequest(t, http.MethodGet, "/admin/settings", nil)
	require.Equal(t, http.StatusOK, got.Code)
	general := got.object(t)["general"].(map[string]interface{})
	assert.Equal(t, "English", general["language"])

	bad := s.makeRequest(t, http.MethodPatch, "/admin/settings/general", map[string]string{"language": "French"})
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	updated := s.makeRequest(t, http.MethodPatch, "/admin/settings/general", map[string]string{"language": "Telugu"})
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Equal(t, "Telugu", updated.object(t)["language"])
}

func TestUnknownRouteAndHealth(t *testing.T) {
	s := newTestServer(t)

	missing := s.makeRequest(t, http.MethodGet, "/admin/nope", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.False(t, missing.Success)
	assert.Equal(t, "Route not found", missing.Message)

	wrongMethod := s.makeRequest(t, http.MethodPut, "/admin/stats/dashboard", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, wrongMethod.Code)

	live := s.makeRequest(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, "UP", live.Fields["status"])

	ready := s.makeRequest(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, ready.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.makeRequest(t, http.MethodGet, "/admin/stats/dashboard", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/admin/stats/dashboard"`)
}
