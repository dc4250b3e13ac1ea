package dto

import "github.com/go-playground/validator/v10"

// SettingsChannels carries the channel targets from the signup form. The
// email channel is a bare preference flag; its target is the login email.
type SettingsChannels struct {
	SMS     string `json:"sms"`
	Email   bool   `json:"email"`
	Discord string `json:"discord"`
}

// SettingsRequest registers a student's notification preferences.
type SettingsRequest struct {
	UserEmail  string           `json:"user_email" validate:"required,email"`
	DaysBefore float64          `json:"days_before"`
	Channels   SettingsChannels `json:"channels"`
}

var validate = validator.New()

// Validate checks the request's structural constraints.
func (r SettingsRequest) Validate() error {
	return validate.Struct(r)
}
