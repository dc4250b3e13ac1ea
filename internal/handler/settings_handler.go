package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoremind/autoremind/internal/dto"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
	"github.com/autoremind/autoremind/pkg/response"
)

type settingsService interface {
	Register(ctx context.Context, req dto.SettingsRequest) error
}

// SettingsHandler exposes the notification-settings signup endpoint.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler builds a new handler.
func NewSettingsHandler(service settingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Register stores a student's channels and notification window.
func (h *SettingsHandler) Register(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "user_email is required and must be a valid email"))
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Settings saved!"})
}
