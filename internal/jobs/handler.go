package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes job endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.save)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/search", h.search)
	rg.GET("/jobs/:id", h.get)
	rg.GET("/jobs/:id/similar", h.similar)
	rg.PUT("/jobs/:id", h.update)
	rg.PUT("/jobs/:id/tags", h.updateTags)
	rg.DELETE("/jobs/:id", h.delete)
}

type saveJobRequest struct {
	PostingText string   `json:"postingText" binding:"required"`
	Tags        []string `json:"tags"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "postingText is required", nil)
		return
	}

	job, err := h.Svc.Save(c.Request.Context(), userID, req.PostingText, req.Tags)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save job", nil)
		return
	}
	respond.Created(c, job)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobs, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list jobs", nil)
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) search(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	keywords := c.QueryArray("q")
	if len(keywords) == 0 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "at least one q parameter is required", nil)
		return
	}

	jobs, err := h.Svc.SearchByKeywords(c.Request.Context(), userID, keywords)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to search jobs", nil)
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) get(c *gin.Context) {
	job, ok := h.ownedJob(c)
	if !ok {
		return
	}
	respond.OK(c, job)
}

func (h *Handler) similar(c *gin.Context) {
	job, ok := h.ownedJob(c)
	if !ok {
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	similar, err := h.Svc.FindSimilarJobs(c.Request.Context(), job.ID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to find similar jobs", nil)
		return
	}
	respond.OK(c, similar)
}

type updateTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

func (h *Handler) updateTags(c *gin.Context) {
	job, ok := h.ownedJob(c)
	if !ok {
		return
	}

	var req updateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "tags are required", nil)
		return
	}

	if err := h.Svc.UpdateTags(c.Request.Context(), job.ID, req.Tags); err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to update tags", nil)
		return
	}
	respond.OK(c, gin.H{"updated": true})
}

func (h *Handler) delete(c *gin.Context) {
	job, ok := h.ownedJob(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), job.ID); err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to delete job", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

type updateJobRequest struct {
	Title            string           `json:"title"`
	Company          string           `json:"company"`
	Location         string           `json:"location"`
	Description      string           `json:"description"`
	Requirements     []JobRequirement `json:"requirements"`
	Responsibilities []string         `json:"responsibilities"`
	Benefits         []string         `json:"benefits"`
	Tags             []string         `json:"tags"`
}

func (h *Handler) update(c *gin.Context) {
	job, ok := h.ownedJob(c)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid job payload", nil)
		return
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Location = req.Location
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Responsibilities = req.Responsibilities
	job.Benefits = req.Benefits
	job.Tags = req.Tags

	updated, err := h.Svc.Update(c.Request.Context(), job)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to update job", nil)
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) ownedJob(c *gin.Context) (Job, bool) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "job id is required", nil)
		return Job{}, false
	}

	job, err := h.Svc.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "job not found", nil)
			return Job{}, false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load job", nil)
		return Job{}, false
	}
	if job.UserID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "job belongs to another user", nil)
		return Job{}, false
	}
	return job, true
}
