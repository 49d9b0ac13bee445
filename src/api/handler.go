package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/repository"
	"github.com/ninadtherock/MindCare/src/services"
	"github.com/ninadtherock/MindCare/src/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	assessmentService services.AssessmentService
	chatService       services.ChatService
	progressService   services.ProgressService
	schedulerService  services.SchedulerService
	assessmentRepo    repository.AssessmentRepository
	counselorRepo     repository.CounselorRepository
}

// NewAPIHandler creates a new APIHandler with the necessary dependencies.
func NewAPIHandler(
	assessmentService services.AssessmentService,
	chatService services.ChatService,
	progressService services.ProgressService,
	schedulerService services.SchedulerService,
	assessmentRepo repository.AssessmentRepository,
	counselorRepo repository.CounselorRepository,
) *APIHandler {
	return &APIHandler{
		assessmentService: assessmentService,
		chatService:       chatService,
		progressService:   progressService,
		schedulerService:  schedulerService,
		assessmentRepo:    assessmentRepo,
		counselorRepo:     counselorRepo,
	}
}

// InitHandler returns the caller's identity for this visit. Callers without
// a userID get a guest identity; real authentication lives in the hosted
// identity provider, not here.
func (h *APIHandler) InitHandler(c *gin.Context) {
	userID := c.Query("userID")
	userType := "registered"
	if userID == "" || strings.HasPrefix(userID, "guest_") {
		userType = "guest"
		if userID == "" {
			userID = fmt.Sprintf("guest_%d", time.Now().UnixNano())
			log.Printf("INFO: [API] No userID provided, generated guest ID %s.", userID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"user_type": userType, "user_id": userID})
}

type startAssessmentRequest struct {
	UserID string `json:"user_id"`
}

// StartAssessmentHandler creates a fresh assessment session.
func (h *APIHandler) StartAssessmentHandler(c *gin.Context) {
	// The body is optional: anonymous callers may start a session with no
	// payload at all.
	var req startAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	state, err := h.assessmentService.StartSession(req.UserID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not start assessment.", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type answerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required"`
}

// AnswerHandler records an answer for the session and returns the advanced
// state, including the result when the session just completed.
func (h *APIHandler) AnswerHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format: option_index is required.", err)
		return
	}

	state, err := h.assessmentService.SubmitAnswer(sessionID, *req.OptionIndex)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOption):
			utils.SendJSONError(c, http.StatusBadRequest, "Selected option is out of range.", err)
		case errors.Is(err, services.ErrInvalidState):
			utils.SendJSONError(c, http.StatusConflict, "This assessment is already complete.", err)
		case errors.Is(err, services.ErrSessionNotFound):
			utils.SendJSONError(c, http.StatusNotFound, "Assessment session not found.", err)
		case errors.Is(err, services.ErrInsufficientData):
			utils.SendJSONError(c, http.StatusUnprocessableEntity, "Assessment has no scorable answers.", err)
		default:
			utils.SendJSONError(c, http.StatusInternalServerError, "Could not record answer.", err)
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetAssessmentHandler returns the session to its initial state.
func (h *APIHandler) ResetAssessmentHandler(c *gin.Context) {
	state, err := h.assessmentService.ResetSession(c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Assessment session not found.", err)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not reset assessment.", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AssessmentResultHandler returns the session state including any computed
// result. A persistence failure shows up as a non-blocking field in the
// payload; it never hides the result.
func (h *APIHandler) AssessmentResultHandler(c *gin.Context) {
	state, err := h.assessmentService.GetSession(c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Assessment session not found.", err)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not fetch assessment.", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AssessmentHistoryHandler returns the user's persisted assessments ordered
// by date, oldest first.
func (h *APIHandler) AssessmentHistoryHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "user_id is required.", nil)
		return
	}

	assessments, err := h.assessmentRepo.GetAssessmentsByUserID(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not fetch assessment history.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

// ProgressHandler returns the user's progress snapshot.
func (h *APIHandler) ProgressHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "user_id is required.", nil)
		return
	}

	snapshot, err := h.progressService.GetSnapshot(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not fetch progress data.", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type chatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ChatHandler relays a message to the support bot and returns its reply.
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "user_id and message are required.", err)
		return
	}

	reply, err := h.chatService.ProcessMessage(req.UserID, req.Message)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not process message.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ChatHistoryHandler returns the user's conversation transcript.
func (h *APIHandler) ChatHistoryHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "user_id is required.", nil)
		return
	}

	messages, err := h.chatService.GetChatHistory(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not fetch chat history.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ListCounselorsHandler returns the counselor directory.
func (h *APIHandler) ListCounselorsHandler(c *gin.Context) {
	profiles, err := h.counselorRepo.ListProfiles()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not fetch counselors.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counselors": profiles})
}

type enrollRequest struct {
	FullName        string   `json:"full_name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Specialization  []string `json:"specialization" binding:"required"`
	ExperienceYears int      `json:"experience_years" binding:"required"`
	Bio             string   `json:"bio" binding:"required"`
	Availability    string   `json:"availability"`
}

// EnrollCounselorHandler registers a new counselor profile.
func (h *APIHandler) EnrollCounselorHandler(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Please fill in all required fields.", err)
		return
	}

	profile := &models.CounselorProfile{
		FullName:        req.FullName,
		Email:           req.Email,
		Specialization:  strings.Join(req.Specialization, ","),
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		Availability:    req.Availability,
	}
	created, err := h.counselorRepo.CreateProfile(profile)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Could not create counselor profile.", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type scheduleHTTPRequest struct {
	CounselorEmail string `json:"counselor_email" binding:"required,email"`
	PatientName    string `json:"patient_name" binding:"required"`
	PatientEmail   string `json:"patient_email" binding:"required,email"`
	DateTime       string `json:"date_time" binding:"required"`
}

// ScheduleHandler books a counseling session via the calendar bridge.
func (h *APIHandler) ScheduleHandler(c *gin.Context) {
	var req scheduleHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid scheduling request.", err)
		return
	}

	resp, err := h.schedulerService.ScheduleSession(models.ScheduleRequest{
		CounselorEmail: req.CounselorEmail,
		PatientName:    req.PatientName,
		PatientEmail:   req.PatientEmail,
		DateTime:       req.DateTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScheduleInvalid):
			utils.SendJSONError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, services.ErrCounselorNotFound):
			utils.SendJSONError(c, http.StatusNotFound, "Counselor not found.", err)
		default:
			// Bridge rejections and transport failures.
			utils.SendJSONError(c, http.StatusBadGateway, "Failed to schedule session: "+err.Error(), err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
