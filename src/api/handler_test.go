package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/services"
)

// MockSchedulerService is a mock type for the SchedulerService interface
type MockSchedulerService struct {
	mock.Mock
}

func (m *MockSchedulerService) ScheduleSession(req models.ScheduleRequest) (*models.ScheduleResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleResponse), args.Error(1)
}

func scheduleRequestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"counselor_email": "sarah.johnson@mindcare.com",
		"patient_name":    "Pat Doe",
		"patient_email":   "pat@example.com",
		"date_time":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	assert.NoError(t, err)
	return body
}

func performSchedule(handler *APIHandler, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/schedule", handler.ScheduleHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func TestScheduleHandler_StatusMapping(t *testing.T) {
	t.Run("Successful booking returns 200 with the bridge payload", func(t *testing.T) {
		mockScheduler := new(MockSchedulerService)
		mockScheduler.On("ScheduleSession", mock.AnythingOfType("models.ScheduleRequest")).
			Return(&models.ScheduleResponse{Success: true, MeetLink: "https://meet.example.com/abc"}, nil).Once()
		handler := NewAPIHandler(nil, nil, nil, mockScheduler, nil, nil)

		recorder := performSchedule(handler, scheduleRequestBody(t))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "meet.example.com")
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Local validation failure maps to 400", func(t *testing.T) {
		mockScheduler := new(MockSchedulerService)
		mockScheduler.On("ScheduleSession", mock.AnythingOfType("models.ScheduleRequest")).
			Return(nil, fmt.Errorf("%w: session time must be in the future", services.ErrScheduleInvalid)).Once()
		handler := NewAPIHandler(nil, nil, nil, mockScheduler, nil, nil)

		recorder := performSchedule(handler, scheduleRequestBody(t))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "future")
	})

	t.Run("Unknown counselor maps to 404", func(t *testing.T) {
		mockScheduler := new(MockSchedulerService)
		mockScheduler.On("ScheduleSession", mock.AnythingOfType("models.ScheduleRequest")).
			Return(nil, fmt.Errorf("%w with email ghost@mindcare.com", services.ErrCounselorNotFound)).Once()
		handler := NewAPIHandler(nil, nil, nil, mockScheduler, nil, nil)

		recorder := performSchedule(handler, scheduleRequestBody(t))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Bridge failure maps to 502", func(t *testing.T) {
		mockScheduler := new(MockSchedulerService)
		mockScheduler.On("ScheduleSession", mock.AnythingOfType("models.ScheduleRequest")).
			Return(nil, errors.New("counselor is unavailable at that time")).Once()
		handler := NewAPIHandler(nil, nil, nil, mockScheduler, nil, nil)

		recorder := performSchedule(handler, scheduleRequestBody(t))

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})

	t.Run("Missing fields are rejected before the service is called", func(t *testing.T) {
		mockScheduler := new(MockSchedulerService)
		handler := NewAPIHandler(nil, nil, nil, mockScheduler, nil, nil)

		recorder := performSchedule(handler, []byte(`{"patient_name":"Pat Doe"}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockScheduler.AssertNotCalled(t, "ScheduleSession", mock.Anything)
	})
}
