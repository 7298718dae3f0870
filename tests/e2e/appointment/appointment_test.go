//go:build e2e

package appointment_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/handler/dto/request"
	"telescope-scheduler/internal/handler/dto/response"
	"telescope-scheduler/tests/common/authtest"
	"telescope-scheduler/tests/common/builder"
	"telescope-scheduler/tests/common/dbtest"
	"telescope-scheduler/tests/common/httptest"
	"telescope-scheduler/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	appointmentsURL    = "/api/appointments"
	requestsURL        = "/api/appointments/requests"
	appointmentURL     = "/api/appointments/%s"
	transitionURL      = "/api/appointments/%s/%s"
	availableTimeURL   = "/api/users/%s/available-time"
	categoryURL        = "/api/admin/users/%s/category"
	logsURL            = "/api/admin/logs"
	completedPublicURL = "/api/appointments/completed/public"
)

type AppointmentSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *AppointmentSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *AppointmentSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAppointmentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AppointmentSuite))
}

// window returns a slot starting tomorrow, truncated to seconds for stable comparisons.
func window(offset, d time.Duration) (time.Time, time.Time) {
	start := time.Now().UTC().Add(24 * time.Hour).Add(offset).Truncate(time.Second)
	return start, start.Add(d)
}

func (s *AppointmentSuite) createBody(telescopeID uuid.UUID, start, end time.Time) request.CreateAppointmentRequest {
	return builder.NewAppointmentBuilder().
		WithTelescopeID(telescopeID).
		WithWindow(start, end).
		BuildCreateRequestDTO()
}

// =============================================================================
// TestCreateAppointment - immediate scheduling
// =============================================================================

func (s *AppointmentSuite) TestCreateAppointment() {
	s.Run("Normal case: researcher schedules and reads back the appointment", func() {
		t := s.T()
		capTime := 50 * time.Hour
		userID := dbtest.CreateObserver(t, s.DB, "bell@example.com", string(user.RoleResearcher), &capTime)
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		token := s.jwt.GenerateToken(t, userID, user.RoleResearcher)

		start, end := window(0, 2*time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEmpty(t, created.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(appointmentURL, created.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got response.AppointmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))

		expected := &response.AppointmentResponse{
			ID:            created.ID,
			UserID:        userID.String(),
			UserFirstName: "Jocelyn",
			UserLastName:  "Bell",
			TelescopeID:   telescopeID.String(),
			TelescopeName: "Arecibo",
			StartTime:     start.Format(time.RFC3339),
			EndTime:       end.Format(time.RFC3339),
			IsPublic:      true,
			Priority:      "PRIMARY",
			Status:        "SCHEDULED",
			Type:          "POINT",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.AppointmentResponse{}, "Payload", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &got, opts...); diff != "" {
			t.Errorf("appointment mismatch (-want +got):\n%s", diff)
		}
		assert.JSONEq(t, `{"hours":5,"minutes":35,"seconds":17,"declination":-5.39}`, string(got.Payload))

		assert.Equal(t, 1, dbtest.CountLogs(t, s.DB, "SCHEDULED", true))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availableTimeURL, userID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var avail response.AvailableTimeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &avail))
		require.NotNil(t, avail.AvailableMs)
		assert.Equal(t, (48 * time.Hour).Milliseconds(), *avail.AvailableMs)
	})

	s.Run("Error case: overlapping create is rejected with OVERLAP", func() {
		t := s.T()
		capTime := 50 * time.Hour
		userID := dbtest.CreateObserver(t, s.DB, "bell@example.com", string(user.RoleResearcher), &capTime)
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		token := s.jwt.GenerateToken(t, userID, user.RoleResearcher)

		start, end := window(0, 2*time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL,
			s.createBody(telescopeID, start.Add(time.Hour), end.Add(time.Hour)), token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Contains(t, httptest.ErrorDetail(t, w), "OVERLAP")

		assert.Equal(t, 1, dbtest.CountAppointments(t, s.DB, "SCHEDULED"))
		assert.Equal(t, 1, dbtest.CountLogs(t, s.DB, "SCHEDULED", false))
	})

	s.Run("Concurrency case: only one of two simultaneous creates wins the slot", func() {
		t := s.T()
		capTime := 50 * time.Hour
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		first := dbtest.CreateObserver(t, s.DB, "first@example.com", string(user.RoleResearcher), &capTime)
		second := dbtest.CreateObserver(t, s.DB, "second@example.com", string(user.RoleResearcher), &capTime)
		tokens := []string{
			s.jwt.GenerateToken(t, first, user.RoleResearcher),
			s.jwt.GenerateToken(t, second, user.RoleResearcher),
		}

		start, end := window(0, time.Hour)
		body := s.createBody(telescopeID, start, end)

		codes := make([]int, len(tokens))
		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, body, token)
				codes[i] = w.Code
			}(i, token)
		}
		wg.Wait()

		assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
		assert.Equal(t, 1, dbtest.CountAppointments(t, s.DB, "SCHEDULED"))
	})

	s.Run("Error case: user without a category of service", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "Carl", "Sagan", "sagan@example.com")
		token := s.jwt.GenerateToken(t, userID, user.RoleResearcher)
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")

		start, end := window(0, time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, httptest.ErrorDetail(t, w), "CATEGORY_OF_SERVICE")
	})

	s.Run("Error case: missing token", func() {
		t := s.T()
		start, end := window(0, time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(uuid.New(), start, end), "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestRequestWorkflow - request, approve, start, finish
// =============================================================================

func (s *AppointmentSuite) TestRequestWorkflow() {
	s.Run("Normal case: admin approves a request and runs it to completion", func() {
		t := s.T()
		capTime := 25 * time.Hour
		userID := dbtest.CreateObserver(t, s.DB, "student@example.com", string(user.RoleStudent), &capTime)
		adminID := dbtest.CreateTestUser(t, s.DB, "Grote", "Reber", "admin@example.com")
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		token := s.jwt.GenerateToken(t, userID, user.RoleStudent)
		adminToken := s.jwt.GenerateToken(t, adminID, user.RoleAdmin)

		start, end := window(0, time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requestsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, requestsURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var pending response.AppointmentListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &pending))
		require.Len(t, pending.Appointments, 1)
		assert.Equal(t, created.ID, pending.Appointments[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(transitionURL, created.ID, "approve"), nil, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		for _, step := range []string{"approve", "start", "finish"} {
			w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(transitionURL, created.ID, step), nil, adminToken)
			require.Equal(t, http.StatusNoContent, w.Code, "%s: %s", step, w.Body.String())
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, completedPublicURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var completed response.AppointmentListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &completed))
		require.Len(t, completed.Appointments, 1)
		assert.Equal(t, "COMPLETED", completed.Appointments[0].Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(transitionURL, created.ID, "cancel"), nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, httptest.ErrorDetail(t, w), "STATUS")
	})

	s.Run("Normal case: owner cancels and the slot opens again", func() {
		t := s.T()
		capTime := 50 * time.Hour
		userID := dbtest.CreateObserver(t, s.DB, "bell@example.com", string(user.RoleResearcher), &capTime)
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		token := s.jwt.GenerateToken(t, userID, user.RoleResearcher)

		start, end := window(0, time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(transitionURL, created.ID, "cancel"), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, s.createBody(telescopeID, start, end), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: private appointment is hidden from other users", func() {
		t := s.T()
		capTime := 50 * time.Hour
		ownerID := dbtest.CreateObserver(t, s.DB, "bell@example.com", string(user.RoleResearcher), &capTime)
		otherID := dbtest.CreateObserver(t, s.DB, "other@example.com", string(user.RoleResearcher), &capTime)
		telescopeID := dbtest.CreateTestTelescope(t, s.DB, "Arecibo")
		token := s.jwt.GenerateToken(t, ownerID, user.RoleResearcher)

		start, end := window(0, time.Hour)
		body := s.createBody(telescopeID, start, end)
		private := false
		body.IsPublic = &private
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(appointmentURL, created.ID), nil,
			s.jwt.GenerateToken(t, otherID, user.RoleResearcher))
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(appointmentURL, created.ID), nil, "")
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestAdministration - category approval and audit log
// =============================================================================

func (s *AppointmentSuite) TestAdministration() {
	s.Run("Normal case: approved category grants the default allotment", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "Carl", "Sagan", "sagan@example.com")
		adminID := dbtest.CreateTestUser(t, s.DB, "Grote", "Reber", "admin@example.com")
		adminToken := s.jwt.GenerateToken(t, adminID, user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(categoryURL, userID),
			request.ApproveCategoryRequest{Category: "STUDENT"}, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availableTimeURL, userID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var avail response.AvailableTimeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &avail))
		assert.Equal(t, "STUDENT", avail.Category)
		assert.False(t, avail.Unlimited)
		require.NotNil(t, avail.AvailableMs)
		assert.Equal(t, (25 * time.Hour).Milliseconds(), *avail.AvailableMs)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, logsURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var logs response.LogListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &logs))
		require.Len(t, logs.Logs, 1)
		for _, entry := range logs.Logs {
			assert.Equal(t, "approveCategory", entry.Event)
			assert.Equal(t, "USER", entry.AffectedTable)
			assert.Equal(t, userID.String(), entry.RecordID)
			assert.True(t, entry.Success)
		}
	})

	s.Run("Error case: non-admin cannot read the audit log", func() {
		t := s.T()
		capTime := 50 * time.Hour
		userID := dbtest.CreateObserver(t, s.DB, "bell@example.com", string(user.RoleResearcher), &capTime)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, logsURL, nil, s.jwt.GenerateToken(t, userID, user.RoleResearcher))
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: expired token", func() {
		t := s.T()
		adminID := dbtest.CreateTestUser(t, s.DB, "Grote", "Reber", "admin@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, logsURL, nil, s.jwt.CreateExpiredToken(t, adminID, user.RoleAdmin))
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
