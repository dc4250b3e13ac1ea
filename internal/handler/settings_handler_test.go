package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoremind/autoremind/internal/dto"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
)

type settingsServiceMock struct {
	err error
	got *dto.SettingsRequest
}

func (m *settingsServiceMock) Register(ctx context.Context, req dto.SettingsRequest) error {
	m.got = &req
	return m.err
}

func postSettings(t *testing.T, h *SettingsHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/api/v1/reminders/settings", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Register(c)
	return w
}

func TestSettingsHandlerRegister(t *testing.T) {
	svc := &settingsServiceMock{}
	handler := NewSettingsHandler(svc)

	w := postSettings(t, handler, `{
		"user_email": "ada@example.com",
		"days_before": 2.5,
		"channels": {"sms": "555-0101", "email": true, "discord": ""}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "ada@example.com", svc.got.UserEmail)
	assert.Equal(t, 2.5, svc.got.DaysBefore)
	assert.Contains(t, w.Body.String(), "Settings saved!")
}

func TestSettingsHandlerRejectsInvalidJSON(t *testing.T) {
	handler := NewSettingsHandler(&settingsServiceMock{})
	w := postSettings(t, handler, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsHandlerRejectsMissingEmail(t *testing.T) {
	svc := &settingsServiceMock{}
	handler := NewSettingsHandler(svc)

	w := postSettings(t, handler, `{"days_before": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.got)
}

func TestSettingsHandlerDuplicateEmail(t *testing.T) {
	handler := NewSettingsHandler(&settingsServiceMock{err: appErrors.ErrDuplicate})

	w := postSettings(t, handler, `{"user_email": "ada@example.com", "days_before": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}
