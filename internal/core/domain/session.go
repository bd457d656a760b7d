package domain

import "time"

// Session is the authenticated-user context of one browser.
type Session struct {
	Token string
}

// IsAuthenticated is true iff a non-empty token is held.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// NotificationLevel classifies a notification for display.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a transient message shown to the user after an operation.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// Navigation is a pending move to another console route.
type Navigation struct {
	Path string
	// Replace means the current location must not stay in history.
	Replace bool
}

// Audit actions.
const (
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionUpdateUser = "update_user"
	ActionDeleteUser = "delete_user"
)

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent records one console action for the audit trail.
type AuditEvent struct {
	ConsoleID string
	Action    string
	UserID    int
	Outcome   string
	Detail    string
	At        time.Time
}
