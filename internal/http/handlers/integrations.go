package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/resolver"
)

type IntegrationRequest struct {
	OrgID       string  `json:"org_id" validate:"required"`
	AssistantID *string `json:"assistant_id"`
	Name        string  `json:"name" validate:"required"`
	Provider    string  `json:"provider" validate:"required"`
	Direction   string  `json:"direction" validate:"omitempty,oneof=inbound outbound bidirectional"`
	Status      string  `json:"status" validate:"omitempty,oneof=active disabled pending"`
	UseCase     string  `json:"use_case" validate:"required"`
	Endpoint    string  `json:"endpoint" validate:"omitempty,url"`
}

// @Summary List integrations
// @Tags integrations
// @Produce json
// @Param org_id query string false "Organization ID"
// @Param assistant_id query string false "Assistant ID"
// @Param use_case query string false "Use case"
// @Success 200 {object} map[string]any
// @Router /api/integrations [get]
func (h *Handler) IntegrationsList(c *gin.Context) {
	useCase := strings.TrimSpace(c.Query("use_case"))
	if useCase != "" {
		useCase = resolver.NormalizeUseCase(useCase)
	}
	items, err := h.Store.ListIntegrations(c.Request.Context(), c.Query("org_id"), c.Query("assistant_id"), useCase, c.Query("status"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list integrations", err.Error())
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, in := range items {
		out = append(out, gin.H{
			"integration": in,
			"category":    resolver.ProviderCategory(in.Provider),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// @Summary Create integration
// @Tags integrations
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/integrations [post]
func (h *Handler) IntegrationCreate(c *gin.Context) {
	var req IntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	useCase := resolver.NormalizeUseCase(req.UseCase)
	if !resolver.KnownUseCase(useCase) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown use case", useCase)
		return
	}
	if req.AssistantID != nil {
		if _, err := h.Store.GetAssistant(c.Request.Context(), *req.AssistantID); err != nil {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Owning assistant not found", nil)
			return
		}
	}

	status := resolver.NormalizeStatus(req.Status)
	if status == "" {
		status = resolver.StatusActive
	}
	now := db.NowUTC()
	in := models.Integration{
		ID:          uuid.NewString(),
		OrgID:       req.OrgID,
		AssistantID: req.AssistantID,
		Name:        req.Name,
		Provider:    resolver.NormalizeProvider(req.Provider),
		Direction:   strings.ToLower(strings.TrimSpace(req.Direction)),
		Status:      status,
		UseCase:     useCase,
		Endpoint:    req.Endpoint,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Store.UpsertIntegration(c.Request.Context(), in); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save integration", err.Error())
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h *Handler) IntegrationUpdate(c *gin.Context) {
	id := c.Param("id")
	existing, err := h.Store.GetIntegration(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Integration not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load integration", err.Error())
		return
	}

	var req IntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	useCase := resolver.NormalizeUseCase(req.UseCase)
	if !resolver.KnownUseCase(useCase) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown use case", useCase)
		return
	}

	existing.AssistantID = req.AssistantID
	existing.Name = req.Name
	existing.Provider = resolver.NormalizeProvider(req.Provider)
	existing.Direction = strings.ToLower(strings.TrimSpace(req.Direction))
	if req.Status != "" {
		existing.Status = resolver.NormalizeStatus(req.Status)
	}
	existing.UseCase = useCase
	existing.Endpoint = req.Endpoint
	existing.UpdatedAt = db.NowUTC()

	if err := h.Store.UpsertIntegration(c.Request.Context(), existing); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save integration", err.Error())
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *Handler) IntegrationDelete(c *gin.Context) {
	if err := h.Store.DeleteIntegration(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Integration not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete integration", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
