package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes recommendation endpoints.
type Handler struct {
	Svc      *Service
	Profiles *profiles.Service
	Jobs     *jobs.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, profileSvc *profiles.Service, jobSvc *jobs.Service) *Handler {
	return &Handler{Svc: svc, Profiles: profileSvc, Jobs: jobSvc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations/generate", h.generate)
	rg.POST("/recommendations/generate-with-options", h.generateWithOptions)
	rg.GET("/recommendations/profiles/:id", h.listForProfile)
	rg.POST("/recommendations/:id/complete", h.complete)
	rg.POST("/recommendations/:id/reject", h.reject)
}

type generateRequest struct {
	ProfileID string `json:"profileId" binding:"required"`
	JobID     string `json:"jobId" binding:"required"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobId are required", nil)
		return
	}
	if !h.authorizeProfile(c, req.ProfileID) || !h.authorizeJob(c, req.JobID) {
		return
	}

	items, err := h.Svc.Generate(c.Request.Context(), req.ProfileID, req.JobID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Created(c, items)
}

type generateWithOptionsRequest struct {
	ProfileID  string               `json:"profileId" binding:"required"`
	JobID      string               `json:"jobId" binding:"required"`
	Types      []RecommendationType `json:"types"`
	Priorities []Priority           `json:"priorities"`
	Limit      int                  `json:"limit"`
}

func (h *Handler) generateWithOptions(c *gin.Context) {
	var req generateWithOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profileId and jobId are required", nil)
		return
	}
	if !h.authorizeProfile(c, req.ProfileID) || !h.authorizeJob(c, req.JobID) {
		return
	}

	items, err := h.Svc.GenerateWithOptions(c.Request.Context(), req.ProfileID, req.JobID, GenerateOptions{
		Types:      req.Types,
		Priorities: req.Priorities,
		Limit:      req.Limit,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) listForProfile(c *gin.Context) {
	profileID := c.Param("id")
	if !h.authorizeProfile(c, profileID) {
		return
	}

	var (
		items []Recommendation
		err   error
	)
	switch {
	case c.Query("jobId") != "":
		items, err = h.Svc.ListForProfileAndJob(c.Request.Context(), profileID, c.Query("jobId"))
	case c.Query("type") != "":
		items, err = h.Svc.ListByType(c.Request.Context(), profileID, RecommendationType(c.Query("type")))
	case c.Query("priority") != "":
		items, err = h.Svc.ListByPriority(c.Request.Context(), profileID, Priority(c.Query("priority")))
	default:
		items, err = h.Svc.ListForProfile(c.Request.Context(), profileID)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) complete(c *gin.Context) {
	item, ok := h.ownedRecommendation(c)
	if !ok {
		return
	}

	updated, err := h.Svc.MarkCompleted(c.Request.Context(), item.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, updated)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) reject(c *gin.Context) {
	item, ok := h.ownedRecommendation(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "reason is required", nil)
		return
	}

	updated, err := h.Svc.MarkRejected(c.Request.Context(), item.ID, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) ownedRecommendation(c *gin.Context) (Recommendation, bool) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return Recommendation{}, false
	}
	if !h.authorizeProfile(c, item.ProfileID) || !h.authorizeJob(c, item.JobID) {
		return Recommendation{}, false
	}
	return item, true
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
	return true
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
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "recommendation not found", nil)
	case errors.Is(err, profiles.ErrNotFound), errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile or job not found", nil)
	case errors.Is(err, ErrInvalidOperation):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeInvalidOperation, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "recommendation operation failed", nil)
	}
}
