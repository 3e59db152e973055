package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskdeck/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "taskdeck-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t)}

	t.Run("creates a local account", func(t *testing.T) {
		id, err := svc.Register(ctx, "Alex", "Alex@Example.com ", "hunter22")
		require.NoError(t, err)
		require.NotZero(t, id.ID)
		require.Equal(t, "alex@example.com", id.Email)
		require.Equal(t, "Alex", id.Name)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Other", "alex@example.com", "another")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "x@example.com", "pw")
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Register(ctx, "Name", "", "pw")
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Register(ctx, "Name", "x@example.com", "  ")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t)}

	registered, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		id, err := svc.Login(ctx, "ALEX@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, registered.ID, id.ID)
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alex@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reports not found", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc := &AuthService{Store: newTestStore(t)}

	id, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("fresh account starts at zero", func(t *testing.T) {
		profile, err := svc.Profile(ctx, id.ID)
		require.NoError(t, err)
		require.Equal(t, 0, profile.Points)
		require.Equal(t, 0, profile.Streak)
		require.Equal(t, 0, profile.CompletedCount)
		require.Empty(t, profile.Badges)
	})

	t.Run("unknown user reports not found", func(t *testing.T) {
		_, err := svc.Profile(ctx, 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})
}
