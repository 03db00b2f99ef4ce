package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes profile endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles", h.create)
	rg.GET("/profiles/me", h.getMine)
	rg.GET("/profiles/search", h.search)
	rg.GET("/profiles/:id", h.get)
	rg.PUT("/profiles/:id/resume", h.updateResume)
	rg.PUT("/profiles/:id/skills", h.updateSkills)
	rg.GET("/profiles/:id/history", h.history)
	rg.DELETE("/profiles/:id", h.delete)
}

type createProfileRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "resumeText is required", nil)
		return
	}

	profile, err := h.Svc.Create(c.Request.Context(), userID, req.ResumeText)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			respond.Error(c, http.StatusConflict, respond.CodeInvalidOperation, "profile already exists for user", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to create profile", nil)
		return
	}
	respond.Created(c, profile)
}

func (h *Handler) get(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) getMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load profile", nil)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) search(c *gin.Context) {
	skill := c.Query("skill")
	if skill == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "skill query parameter is required", nil)
		return
	}

	found, err := h.Svc.FindBySkill(c.Request.Context(), skill)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to search profiles", nil)
		return
	}
	respond.OK(c, found)
}

type updateResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

func (h *Handler) updateResume(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "resumeText is required", nil)
		return
	}

	updated, err := h.Svc.UpdateResumeText(c.Request.Context(), profile.ID, req.ResumeText)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to update resume", nil)
		return
	}
	respond.OK(c, updated)
}

type updateSkillsRequest struct {
	Skills []Skill `json:"skills" binding:"required"`
}

func (h *Handler) updateSkills(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	var req updateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "skills are required", nil)
		return
	}

	updated, err := h.Svc.UpdateSkills(c.Request.Context(), profile.ID, req.Skills)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to update skills", nil)
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) history(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	history, err := h.Svc.GetHistory(c.Request.Context(), profile.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load profile history", nil)
		return
	}
	respond.OK(c, history)
}

func (h *Handler) delete(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), profile.ID); err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to delete profile", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

// ownedProfile loads the :id profile and enforces ownership by the
// authenticated user. On failure it writes the error response itself.
func (h *Handler) ownedProfile(c *gin.Context) (Profile, bool) {
	profileID := c.Param("id")
	if profileID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "profile id is required", nil)
		return Profile{}, false
	}

	profile, err := h.Svc.Get(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
			return Profile{}, false
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load profile", nil)
		return Profile{}, false
	}
	if profile.UserID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "profile belongs to another user", nil)
		return Profile{}, false
	}
	return profile, true
}
