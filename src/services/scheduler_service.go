package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ninadtherock/MindCare/src/config"
	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/repository"
)

// SchedulerService books counseling sessions through the external calendar
// bridge. The bridge owns the calendar event and the one-hour session
// length; this service validates the request and relays it.
type SchedulerService interface {
	ScheduleSession(req models.ScheduleRequest) (*models.ScheduleResponse, error)
}

type schedulerService struct {
	cfg           config.SchedulingConfig
	counselorRepo repository.CounselorRepository
	client        *http.Client
}

// NewSchedulerService creates a SchedulerService using the configured
// bridge endpoint.
func NewSchedulerService(cfg config.SchedulingConfig, counselorRepo repository.CounselorRepository) SchedulerService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &schedulerService{
		cfg:           cfg,
		counselorRepo: counselorRepo,
		client:        &http.Client{Timeout: timeout},
	}
}

// ScheduleSession validates the booking and calls the calendar bridge.
// On success the response carries the meeting join link.
func (s *schedulerService) ScheduleSession(req models.ScheduleRequest) (*models.ScheduleResponse, error) {
	if s.cfg.URL == "" {
		return nil, errors.New("scheduling service is not configured")
	}
	if req.CounselorEmail == "" || req.PatientEmail == "" {
		return nil, fmt.Errorf("%w: counselor and patient emails are required", ErrScheduleInvalid)
	}

	when, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: session time %q is not RFC 3339: %v", ErrScheduleInvalid, req.DateTime, err)
	}
	if !when.After(time.Now()) {
		return nil, fmt.Errorf("%w: session time must be in the future", ErrScheduleInvalid)
	}

	profile, err := s.counselorRepo.GetProfileByEmail(req.CounselorEmail)
	if err != nil {
		return nil, fmt.Errorf("looking up counselor: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w with email %s", ErrCounselorNotFound, req.CounselorEmail)
	}
	if req.CounselorName == "" {
		req.CounselorName = profile.FullName
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding schedule request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building schedule request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	log.Printf("INFO: [SchedulerService] Booking session with %s at %s.", req.CounselorEmail, req.DateTime)

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling scheduling service: %w", err)
	}
	defer httpResp.Body.Close()

	var resp models.ScheduleResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("scheduling service returned status %d with unreadable body: %w", httpResp.StatusCode, err)
	}

	if !resp.Success {
		remoteErr := resp.Error
		if remoteErr == "" {
			remoteErr = fmt.Sprintf("scheduling failed with status %d", httpResp.StatusCode)
		}
		log.Printf("WARN: [SchedulerService] Bridge rejected booking with %s: %s", req.CounselorEmail, remoteErr)
		return nil, errors.New(remoteErr)
	}

	log.Printf("INFO: [SchedulerService] Session booked with %s, meet link issued.", req.CounselorEmail)
	return &resp, nil
}
