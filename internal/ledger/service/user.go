package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/idx"
)

// usernameMinLen keeps admin typos out of the user table.
const usernameMinLen = 3

// UserService manages the operator accounts the connexion trail refers
// to. Credentials live in the external authentication frontend; only
// identity and role are kept here.
type UserService struct {
	Store store.Store

	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateUser registers a new operator account with the given role.
func (s *UserService) CreateUser(ctx context.Context, username string, role domain.Role) (domain.User, error) {
	username = strings.TrimSpace(username)

	verr := domain.NewValidationError()
	if len(username) < usernameMinLen {
		verr.Add("username", "nom d'utilisateur trop court")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		verr.Add("role", "rôle inconnu (user ou admin)")
	}
	if err := verr.ErrOrNil(); err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:        string(idx.New()),
		Username:  username,
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

// ListUsers returns all operator accounts in creation order.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		verr := domain.NewValidationError()
		verr.Add("role", "rôle inconnu (user ou admin)")
		return domain.User{}, verr
	}

	if err := s.Store.Users().UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}
