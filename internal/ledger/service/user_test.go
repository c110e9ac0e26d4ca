package service

import (
	"context"
	"testing"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create defaults to user role", func(t *testing.T) {
		st := newTestStore(t)
		us := &UserService{Store: st, Now: fixedNow}

		user, err := us.CreateUser(ctx, "  moussa  ", "")
		require.NoError(t, err)
		require.Equal(t, "moussa", user.Username)
		require.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		st := newTestStore(t)
		us := &UserService{Store: st, Now: fixedNow}

		_, err := us.CreateUser(ctx, "moussa", domain.RoleUser)
		require.NoError(t, err)
		_, err = us.CreateUser(ctx, "moussa", domain.RoleAdmin)
		require.ErrorIs(t, err, ErrUsernameAlreadyTaken)
	})

	t.Run("role updates are persisted", func(t *testing.T) {
		st := newTestStore(t)
		us := &UserService{Store: st, Now: fixedNow}

		user, err := us.CreateUser(ctx, "aicha", domain.RoleUser)
		require.NoError(t, err)

		updated, err := us.UpdateRole(ctx, user.ID, domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, updated.Role)

		_, err = us.UpdateRole(ctx, "01K0000000000000000000TEST", domain.RoleUser)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		st := newTestStore(t)
		us := &UserService{Store: st, Now: fixedNow}

		_, err := us.CreateUser(ctx, "ab", domain.RoleUser)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "username")

		_, err = us.CreateUser(ctx, "valide", domain.Role("superadmin"))
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "role")
	})
}
