package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotwise/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &AvailabilityHandler{Now: func() time.Time {
		return time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)
	}}
	r.POST("/api/availability/resolve", h.ResolveHandler)
	r.POST("/api/availability/window", h.WindowHandler)
	r.POST("/api/availability/team-window", h.TeamWindowHandler)
	r.POST("/api/availability/label", h.LabelHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func weekdays() models.WeeklySchedule {
	ws := models.WeeklySchedule{}
	for _, key := range models.WeekdayKeys {
		ws[key] = models.DaySchedule{Available: true, StartTime: "09:00", EndTime: "17:00"}
	}
	ws["saturday"] = models.DaySchedule{Available: false}
	ws["sunday"] = models.DaySchedule{Available: false}
	return ws
}

func TestResolveEndpoint(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/resolve", models.ResolutionQuery{
		WeeklySchedule:   weekdays(),
		CompanyBlocks:    models.BlockSet{Dates: []models.BlockedDate{{Date: "2025-06-03", Reason: "inventory"}}},
		ProfessionalZone: "Europe/Brussels",
		From:             "2025-06-02",
		HorizonDays:      3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		From string               `json:"from"`
		Days []models.ResolvedDay `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-02", resp.From)
	require.Len(t, resp.Days, 3)
	assert.True(t, resp.Days[0].Open)
	assert.Equal(t, models.BlockedByCompany, resp.Days[1].BlockedBy)
	assert.Equal(t, "inventory", resp.Days[1].Reason)
}

func TestResolveEndpointRejectsBadZone(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/resolve", models.ResolutionQuery{
		WeeklySchedule:   weekdays(),
		ProfessionalZone: "Nowhere/Nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWindowEndpoint(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/window", models.WindowQuery{
		ResolutionQuery: models.ResolutionQuery{
			WeeklySchedule:   weekdays(),
			ProfessionalZone: "Europe/Brussels",
		},
		WorkRequest: models.WorkRequest{
			Execution: models.Duration{Value: 4, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
		ViewerZone: "America/New_York",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BookingWindowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.FirstAvailableInstant)
	assert.Equal(t, time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC), resp.FirstAvailableInstant.UTC())
	assert.Equal(t, "2025-06-02", resp.FirstAvailableDate)
	require.NotNil(t, resp.StartLabel)
	assert.Equal(t, "2025-06-02 09:00 CEST", resp.StartLabel.Professional)
	assert.Equal(t, "2025-06-02 03:00 EDT", resp.StartLabel.Viewer)
}

func TestWindowEndpointUnsatisfiableIsOK(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/window", models.WindowQuery{
		ResolutionQuery: models.ResolutionQuery{
			WeeklySchedule:   weekdays(),
			ProfessionalZone: "Europe/Brussels",
			HorizonDays:      14,
		},
		WorkRequest: models.WorkRequest{
			Execution: models.Duration{Value: 12, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BookingWindowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Unsatisfiable)
	assert.Nil(t, resp.FirstAvailableInstant)
}

func TestWindowEndpointFromDateWhoseMidnightIsInDSTGap(t *testing.T) {
	// Sao Paulo's 2017 spring-forward removed midnight on 2017-10-15; a scan
	// starting there must shift into the day, not fail the request.
	r := testRouter()
	w := postJSON(t, r, "/api/availability/window", models.WindowQuery{
		ResolutionQuery: models.ResolutionQuery{
			WeeklySchedule:   weekdays(),
			ProfessionalZone: "America/Sao_Paulo",
			From:             "2017-10-15",
		},
		WorkRequest: models.WorkRequest{
			Execution: models.Duration{Value: 4, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BookingWindowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Unsatisfiable)
	// 2017-10-15 was a Sunday, closed in the fixture week.
	assert.Equal(t, "2017-10-16", resp.FirstAvailableDate)
}

func TestTeamWindowEndpoint(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/team-window", models.TeamWindowQuery{
		WeeklySchedule:   weekdays(),
		ProfessionalZone: "Europe/Brussels",
		Members: []models.TeamMemberSnapshot{
			{WorkerID: "w1"},
			{WorkerID: "w2", PersonalBlocks: models.BlockSet{
				Dates: []models.BlockedDate{{Date: "2025-06-02"}},
			}},
		},
		WorkRequest: models.WorkRequest{
			Execution: models.Duration{Value: 4, Unit: models.UnitHours},
			TimeMode:  models.TimeModeHours,
		},
		MinResourceCount:     2,
		MinOverlapPercentage: 100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BookingWindowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.FirstAvailableInstant)
	// Monday is out for w2, so the team's first date is Tuesday.
	assert.Equal(t, time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC), resp.FirstAvailableInstant.UTC())
}

func TestLabelEndpoint(t *testing.T) {
	r := testRouter()
	w := postJSON(t, r, "/api/availability/label", gin.H{
		"instant":          "2025-06-02T07:00:00Z",
		"professionalZone": "Europe/Brussels",
		"viewerZone":       "America/New_York",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var label models.DualZoneLabel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &label))
	assert.Equal(t, "2025-06-02 09:00 CEST", label.Professional)
	assert.Equal(t, "2025-06-02 03:00 EDT", label.Viewer)
}
