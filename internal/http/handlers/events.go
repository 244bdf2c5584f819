package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/resolver"
)

const (
	DeliveryStatusDelivered = "DELIVERED"
	DeliveryStatusFailed    = "FAILED"
	DeliveryStatusSkipped   = "SKIPPED"
)

type DispatchRequest struct {
	AssistantID string         `json:"assistant_id" validate:"required"`
	Event       string         `json:"event" validate:"required"`
	Payload     map[string]any `json:"payload"`
}

// @Summary Dispatch a business event
// @Description Resolves the event's fan-out and invokes each resolved integration. Use cases are independent; one failing never blocks the others.
// @Tags events
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/events [post]
func (h *Handler) EventDispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	catalog, policy, ok := h.loadResolutionInputs(c, req.AssistantID)
	if !ok {
		return
	}

	event := resolver.NormalizeEvent(req.Event)
	plan, known := resolver.ResolveEvent(catalog, policy, event)
	if !known {
		writeError(c, http.StatusBadRequest, "UNKNOWN_EVENT", "Event has no use-case mapping", event)
		return
	}

	now := db.NowUTC()
	deliveries := make([]models.EventDelivery, 0, len(plan))
	items := make([]gin.H, 0, len(plan))

	for _, res := range plan {
		d := models.EventDelivery{
			ID:          uuid.NewString(),
			AssistantID: req.AssistantID,
			Event:       event,
			UseCase:     res.UseCase,
			Source:      res.Source,
			CreatedAt:   now,
		}

		if !res.Resolved() {
			d.Status = DeliveryStatusSkipped
			d.Detail, _ = json.Marshal(gin.H{"reason_code": res.ReasonCode, "reason_text": res.ReasonText})
		} else {
			d.IntegrationID = &res.Integration.ID
			latencyMs, err := h.Invoker.Invoke(c.Request.Context(), *res.Integration, event, req.Payload)
			if err != nil {
				d.Status = DeliveryStatusFailed
				d.Error = err.Error()
				h.Logger.Error().Err(err).
					Str("integration_id", res.Integration.ID).
					Str("use_case", res.UseCase).
					Msg("provider invocation failed")
			} else {
				d.Status = DeliveryStatusDelivered
			}
			d.Detail, _ = json.Marshal(gin.H{"latency_ms": latencyMs, "provider": res.Integration.Provider})
		}

		deliveries = append(deliveries, d)
		item := gin.H{
			"use_case": res.UseCase,
			"source":   res.Source,
			"status":   d.Status,
		}
		if d.IntegrationID != nil {
			item["integration_id"] = *d.IntegrationID
		}
		if d.Error != "" {
			item["error"] = d.Error
		}
		items = append(items, item)
	}

	if _, err := h.Store.InsertEventDeliveries(c.Request.Context(), deliveries); err != nil {
		h.Logger.Error().Err(err).Msg("failed to record event deliveries")
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "results": items})
}

func (h *Handler) EventDeliveriesList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListEventDeliveries(c.Request.Context(), c.Query("assistant_id"), resolver.NormalizeEvent(c.Query("event")), limit, offset)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list deliveries", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}
