package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

// User-facing messages for remote user operations.
const (
	msgLoadUsersFailed  = "Failed to load users"
	msgLoadUserFailed   = "Failed to load user details"
	msgUserUpdated      = "User updated successfully"
	msgUpdateUserFailed = "Failed to update user"
	msgUserDeleted      = "User deleted successfully"
	msgDeleteUserFailed = "Failed to delete user"
)

// UserService wraps the remote gateway with the console's failure policy:
// log, notify, then hand the unchanged error back so the caller halts.
type UserService struct {
	gateway   ports.UserGateway
	notifier  ports.Notifier
	audit     ports.AuditRecorder
	consoleID string
	log       zerolog.Logger
}

// NewUserService binds the policy to one browser. audit may be nil.
func NewUserService(
	gateway ports.UserGateway,
	notifier ports.Notifier,
	audit ports.AuditRecorder,
	consoleID string,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		gateway:   gateway,
		notifier:  notifier,
		audit:     audit,
		consoleID: consoleID,
		log:       log,
	}
}

func (s *UserService) ListUsers(ctx context.Context, page int) (*domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.gateway.ListUsers(ctx, page)
	if err != nil {
		s.fail(ctx, err, msgLoadUsersFailed, "error fetching users", zerolog.Dict().Int("page", page))
		return nil, err
	}
	return result, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.gateway.GetUser(ctx, id)
	if err != nil {
		s.fail(ctx, err, msgLoadUserFailed, "error fetching user", zerolog.Dict().Int("user_id", id))
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.gateway.UpdateUser(ctx, id, update)
	if err != nil {
		s.fail(ctx, err, msgUpdateUserFailed, "error updating user", zerolog.Dict().Int("user_id", id))
		s.record(domain.ActionUpdateUser, id, domain.OutcomeFailure, err.Error())
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Notification{Level: domain.LevelSuccess, Message: msgUserUpdated})
	s.record(domain.ActionUpdateUser, id, domain.OutcomeSuccess, "")
	s.log.Info().Int("user_id", id).Msg("user updated")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.gateway.DeleteUser(ctx, id); err != nil {
		s.fail(ctx, err, msgDeleteUserFailed, "error deleting user", zerolog.Dict().Int("user_id", id))
		s.record(domain.ActionDeleteUser, id, domain.OutcomeFailure, err.Error())
		return err
	}

	s.notifier.Notify(ctx, domain.Notification{Level: domain.LevelSuccess, Message: msgUserDeleted})
	s.record(domain.ActionDeleteUser, id, domain.OutcomeSuccess, "")
	s.log.Info().Int("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) fail(ctx context.Context, err error, notice, logMsg string, fields *zerolog.Event) {
	s.log.Error().Err(err).Dict("call", fields).Str("console_id", s.consoleID).Msg(logMsg)
	s.notifier.Notify(ctx, domain.Notification{Level: domain.LevelError, Message: notice})
}

func (s *UserService) record(action string, userID int, outcome, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		ConsoleID: s.consoleID,
		Action:    action,
		UserID:    userID,
		Outcome:   outcome,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}

// ParseUserID converts a route parameter into a positive user id.
func ParseUserID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidUserID
	}
	return id, nil
}
