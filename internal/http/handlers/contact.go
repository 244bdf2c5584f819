package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/notify"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// @Summary Submit contact form
// @Description Stores the submission and emails the office in the background.
// @Tags contact
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/contact [post]
func (h *Handler) ContactCreate(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	cs := models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Status:    "new",
		CreatedAt: db.NowUTC(),
	}
	if err := h.Store.InsertContactSubmission(c.Request.Context(), cs); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to store submission", err.Error())
		return
	}

	// Email in the background; delivery failure never leaks into the
	// visitor-facing response once the submission is stored.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.Mailer.SendContactNotification(ctx, cs); err != nil {
			h.Logger.Error().Err(err).Str("submission_id", cs.ID).Msg("contact notification failed")
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Thank you for contacting us. We'll get back to you within 24 hours.",
		"id":      cs.ID,
	})
}

func (h *Handler) ContactList(c *gin.Context) {
	items, err := h.Store.ListContactSubmissions(c.Request.Context(), atoiDefault(c.Query("limit"), 50), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list submissions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Structured request webhook
// @Description Endpoint for the voice assistant's send_structured_email tool.
// @Tags vapi
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/vapi/structured-request [post]
func (h *Handler) VapiStructuredRequest(c *gin.Context) {
	var req notify.StructuredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", err.Error())
		return
	}

	if missing := missingStructuredFields(req); len(missing) > 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields", missing)
		return
	}

	// Sent synchronously so the assistant's tool call sees delivery errors.
	if err := h.Mailer.SendStructuredRequest(c.Request.Context(), req); err != nil {
		var de notify.DeliveryError
		if errors.As(err, &de) {
			writeError(c, http.StatusBadGateway, "DELIVERY_FAILED", "Email delivery failed", de.Error())
			return
		}
		h.Logger.Error().Err(err).Msg("structured request failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func missingStructuredFields(req notify.StructuredRequest) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("subject", req.Subject)
	check("request_type", req.RequestType)
	check("resident_name", req.ResidentName)
	check("resident_phone", req.ResidentPhone)
	check("address", req.Address)
	check("details", req.Details)
	return missing
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
