package service

import (
	"context"
	"errors"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/idx"
)

// ConnexionService records the login/logout trail fed by the external
// authentication frontend. The trail is append-only; housekeeping
// prunes it after the retention window.
type ConnexionService struct {
	Store store.Store

	Now func() time.Time
}

func (s *ConnexionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordConnexion appends a login or logout event for the named user.
// The username is snapshotted onto the event so the trail stays
// readable if the user is later renamed or removed.
func (s *ConnexionService) RecordConnexion(ctx context.Context, username string, action domain.ConnexionAction) (domain.ConnexionEvent, error) {
	if !action.Valid() {
		return domain.ConnexionEvent{}, ErrInvalidAction
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ConnexionEvent{}, ErrUserNotFound
		}
		return domain.ConnexionEvent{}, err
	}

	event := domain.ConnexionEvent{
		ID:         string(idx.New()),
		UserID:     user.ID,
		Username:   user.Username,
		Action:     action,
		DateAction: s.now(),
	}
	if err := s.Store.Connexions().AppendEvent(ctx, event); err != nil {
		return domain.ConnexionEvent{}, err
	}
	return event, nil
}
