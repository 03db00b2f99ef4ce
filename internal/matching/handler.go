package matching

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes matching endpoints. Ownership of the referenced profile
// and job is enforced here; the engine itself trusts the identifiers.
type Handler struct {
	Svc      *Service
	Profiles *profiles.Service
	Jobs     *jobs.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, profileSvc *profiles.Service, jobSvc *jobs.Service) *Handler {
	return &Handler{Svc: svc, Profiles: profileSvc, Jobs: jobSvc}
}

// RegisterRoutes attaches matching routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matching/calculate", h.calculate)
	rg.POST("/matching/detailed", h.detailed)
	rg.GET("/matching/trend", h.trend)
	rg.GET("/matching/history/profiles/:id", h.profileHistory)
	rg.GET("/matching/history/jobs/:id", h.jobHistory)
	rg.POST("/matching/compare/jobs", h.compareJobs)
	rg.POST("/matching/compare/profiles", h.compareProfiles)
}

type matchRequest struct {
	ProfileID string `json:"profileId" binding:"required"`
	JobID     string `json:"jobId" binding:"required"`
}

func (h *Handler) calculate(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobId are required", nil)
		return
	}
	if !h.authorizePair(c, req.ProfileID, req.JobID) {
		return
	}

	result, err := h.Svc.CalculateMatch(c.Request.Context(), req.ProfileID, req.JobID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) detailed(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobId are required", nil)
		return
	}
	if !h.authorizePair(c, req.ProfileID, req.JobID) {
		return
	}

	detailed, err := h.Svc.GetDetailedAnalysis(c.Request.Context(), req.ProfileID, req.JobID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, detailed)
}

func (h *Handler) trend(c *gin.Context) {
	profileID := c.Query("profileId")
	jobID := c.Query("jobId")
	if profileID == "" || jobID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobId are required", nil)
		return
	}
	if !h.authorizePair(c, profileID, jobID) {
		return
	}

	trend, err := h.Svc.GetTrend(c.Request.Context(), profileID, jobID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, trend)
}

func (h *Handler) profileHistory(c *gin.Context) {
	profileID := c.Param("id")
	if !h.authorizeProfile(c, profileID) {
		return
	}

	history, err := h.Svc.GetProfileMatchHistory(c.Request.Context(), profileID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, history)
}

func (h *Handler) jobHistory(c *gin.Context) {
	jobID := c.Param("id")
	if !h.authorizeJob(c, jobID) {
		return
	}

	history, err := h.Svc.GetJobMatchHistory(c.Request.Context(), jobID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, history)
}

type compareJobsRequest struct {
	ProfileID string   `json:"profileId" binding:"required"`
	JobIDs    []string `json:"jobIds" binding:"required,min=1"`
}

func (h *Handler) compareJobs(c *gin.Context) {
	var req compareJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobIds are required", nil)
		return
	}
	if !h.authorizeProfile(c, req.ProfileID) {
		return
	}
	for _, jobID := range req.JobIDs {
		if !h.authorizeJob(c, jobID) {
			return
		}
	}

	results, err := h.Svc.CompareJobs(c.Request.Context(), req.ProfileID, req.JobIDs)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, results)
}

type compareProfilesRequest struct {
	ProfileIDs []string `json:"profileIds" binding:"required,min=1"`
	JobID      string   `json:"jobId" binding:"required"`
}

func (h *Handler) compareProfiles(c *gin.Context) {
	var req compareProfilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileIds and jobId are required", nil)
		return
	}
	if !h.authorizeJob(c, req.JobID) {
		return
	}
	for _, profileID := range req.ProfileIDs {
		if !h.authorizeProfile(c, profileID) {
			return
		}
	}

	results, err := h.Svc.CompareProfiles(c.Request.Context(), req.ProfileIDs, req.JobID)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}
	respond.OK(c, results)
}

func (h *Handler) authorizePair(c *gin.Context, profileID, jobID string) bool {
	return h.authorizeProfile(c, profileID) && h.authorizeJob(c, jobID)
}

func (h *Handler) authorizeProfile(c *gin.Context, profileID string) bool {
	profile, err := h.Profiles.Get(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
			return false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load profile", nil)
		return false
	}
	if profile.UserID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "profile belongs to another user", nil)
		return false
	}
	c.Set("profileId", profile.ID)
	return true
}

func (h *Handler) authorizeJob(c *gin.Context, jobID string) bool {
	job, err := h.Jobs.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "job not found", nil)
			return false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load job", nil)
		return false
	}
	if job.UserID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "job belongs to another user", nil)
		return false
	}
	c.Set("jobId", job.ID)
	return true
}

func (h *Handler) writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profiles.ErrNotFound), errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile or job not found", nil)
	case errors.Is(err, ErrInvalidOperation):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeInvalidOperation, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to compute match", nil)
	}
}
