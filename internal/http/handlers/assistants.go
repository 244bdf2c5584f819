package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/resolver"
)

type AssistantRequest struct {
	OrgID   string `json:"org_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Channel string `json:"channel" validate:"omitempty,oneof=voice chat"`
}

type PolicyRequest struct {
	IntegrationsEnabled bool              `json:"integrations_enabled"`
	UseOrgDefaults      bool              `json:"use_org_defaults"`
	OverrideOrgSettings bool              `json:"override_org_settings"`
	Selections          map[string]string `json:"selections"`
}

func (h *Handler) AssistantsList(c *gin.Context) {
	items, err := h.Store.ListAssistants(c.Request.Context(), c.Query("org_id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list assistants", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Create assistant
// @Description Creates the assistant together with its default integration policy.
// @Tags assistants
// @Accept json
// @Produce json
// @Success 201 {object} models.Assistant
// @Router /api/assistants [post]
func (h *Handler) AssistantCreate(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "voice"
	}
	a := models.Assistant{
		ID:        uuid.NewString(),
		OrgID:     req.OrgID,
		Name:      req.Name,
		Channel:   channel,
		CreatedAt: db.NowUTC(),
	}
	if err := h.Store.CreateAssistant(c.Request.Context(), a); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create assistant", err.Error())
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) PolicyGet(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Store.GetAssistant(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Assistant not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load assistant", err.Error())
		return
	}
	policy, err := h.Store.GetPolicy(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load policy", err.Error())
		return
	}
	c.JSON(http.StatusOK, policy)
}

// @Summary Update assistant integration settings
// @Tags assistants
// @Accept json
// @Produce json
// @Success 200 {object} models.AssistantPolicy
// @Failure 400 {object} map[string]any
// @Router /api/assistants/{id}/integration-settings [put]
func (h *Handler) PolicyPut(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Store.GetAssistant(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Assistant not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load assistant", err.Error())
		return
	}

	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	selections := map[string]string{}
	for rawUC, integrationID := range req.Selections {
		uc := resolver.NormalizeUseCase(rawUC)
		if !resolver.KnownUseCase(uc) || uc == resolver.UseCaseGeneral {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown use case in selections", rawUC)
			return
		}
		if integrationID == "" {
			continue
		}
		selections[uc] = integrationID
	}

	policy := models.AssistantPolicy{
		AssistantID:         id,
		IntegrationsEnabled: req.IntegrationsEnabled,
		UseOrgDefaults:      req.UseOrgDefaults,
		OverrideOrgSettings: req.OverrideOrgSettings,
		Selections:          selections,
		UpdatedAt:           db.NowUTC(),
	}
	if err := h.Store.UpsertPolicy(c.Request.Context(), policy); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save policy", err.Error())
		return
	}
	c.JSON(http.StatusOK, policy)
}
