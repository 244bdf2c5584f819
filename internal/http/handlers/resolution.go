package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/resolver"
)

// loadResolutionInputs fetches the two snapshots the engine needs. Every
// resolution endpoint goes through here so they can never diverge on inputs.
func (h *Handler) loadResolutionInputs(c *gin.Context, assistantID string) ([]models.Integration, models.AssistantPolicy, bool) {
	assistant, err := h.Store.GetAssistant(c.Request.Context(), assistantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Assistant not found", nil)
			return nil, models.AssistantPolicy{}, false
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load assistant", err.Error())
		return nil, models.AssistantPolicy{}, false
	}
	catalog, err := h.Store.GetCatalog(c.Request.Context(), assistant.OrgID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load catalog", err.Error())
		return nil, models.AssistantPolicy{}, false
	}
	policy, err := h.Store.GetPolicy(c.Request.Context(), assistantID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load policy", err.Error())
		return nil, models.AssistantPolicy{}, false
	}
	return catalog, policy, true
}

// @Summary Effective integration for a use case
// @Description Resolves which integration would run for (assistant, use case) and why.
// @Tags resolution
// @Produce json
// @Param id path string true "Assistant ID"
// @Param use_case query string true "Use case"
// @Success 200 {object} map[string]any
// @Router /api/assistants/{id}/resolution [get]
func (h *Handler) Resolution(c *gin.Context) {
	useCase := resolver.NormalizeUseCase(c.Query("use_case"))
	if useCase == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "use_case is required", nil)
		return
	}
	if !resolver.KnownUseCase(useCase) || useCase == resolver.UseCaseGeneral {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown use case", useCase)
		return
	}

	catalog, policy, ok := h.loadResolutionInputs(c, c.Param("id"))
	if !ok {
		return
	}

	result := resolver.Resolve(catalog, policy, useCase)
	badge := resolver.Explain(result)
	result.Stages = nil
	c.JSON(http.StatusOK, gin.H{"result": result, "badge": badge})
}

// @Summary Event invocation plan
// @Description Fan-out preview: one resolution per use case the event maps to.
// @Tags resolution
// @Produce json
// @Param id path string true "Assistant ID"
// @Param event query string true "Event type"
// @Success 200 {object} map[string]any
// @Router /api/assistants/{id}/resolution/plan [get]
func (h *Handler) ResolutionPlan(c *gin.Context) {
	event := resolver.NormalizeEvent(c.Query("event"))
	if event == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "event is required", nil)
		return
	}

	catalog, policy, ok := h.loadResolutionInputs(c, c.Param("id"))
	if !ok {
		return
	}

	results, known := resolver.ResolveEvent(catalog, policy, event)
	if !known {
		writeError(c, http.StatusBadRequest, "UNKNOWN_EVENT", "Event has no use-case mapping", event)
		return
	}

	items := make([]gin.H, 0, len(results))
	for _, res := range results {
		badge := resolver.Explain(res)
		res.Stages = nil
		items = append(items, gin.H{"result": res, "badge": badge})
	}
	c.JSON(http.StatusOK, gin.H{"event": event, "items": items})
}

// @Summary Debug resolution
// @Description Full stage trace of a single-use-case resolution.
// @Tags debug
// @Produce json
// @Param assistant_id query string true "Assistant ID"
// @Param use_case query string true "Use case"
// @Success 200 {object} map[string]any
// @Router /api/debug/resolution [get]
func (h *Handler) DebugResolution(c *gin.Context) {
	assistantID := strings.TrimSpace(c.Query("assistant_id"))
	if assistantID == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "assistant_id is required", nil)
		return
	}
	useCase := resolver.NormalizeUseCase(c.Query("use_case"))
	if !resolver.KnownUseCase(useCase) || useCase == resolver.UseCaseGeneral {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown use case", useCase)
		return
	}

	catalog, policy, ok := h.loadResolutionInputs(c, assistantID)
	if !ok {
		return
	}

	result := resolver.Resolve(catalog, policy, useCase)

	stageIDs := map[string][]string{}
	for _, stage := range result.Stages {
		var ids []string
		for _, in := range stage.Candidates {
			ids = append(ids, in.ID)
		}
		stageIDs[stage.Name] = ids
	}

	resp := gin.H{
		"assistant_id": assistantID,
		"use_case":     useCase,
		"stages":       stageIDs,
		"final": gin.H{
			"source":      result.Source,
			"reason_code": result.ReasonCode,
			"reason_text": result.ReasonText,
			"badge":       resolver.Explain(result),
		},
	}
	if result.Resolved() {
		resp["integration_id"] = result.Integration.ID
	}
	c.JSON(http.StatusOK, resp)
}
