package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/repository"
	"github.com/alexanderramin/followup/internal/testutil"
)

func newTestSession(t *testing.T) (*Session, *repository.SQLiteLocalStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteLocalStore(database)
	return New(store, testutil.NewTestUoW(database)), store
}

func TestSession_InitReadsStoredIdentity(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSession(t)
	require.NoError(t, store.Set(ctx, repository.KeyTelegramID, "123456"))

	assert.False(t, s.IsLoggedIn())
	require.NoError(t, s.Init(ctx))
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "123456", s.Identity())
}

func TestSession_SetIdentityValidates(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSession(t)

	for _, bad := range []string{"", "   ", "12a4", "-5", "12 34"} {
		err := s.SetIdentity(ctx, bad)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), bad)
	}
	assert.False(t, s.IsLoggedIn())

	require.NoError(t, s.SetIdentity(ctx, " 987654 "))
	assert.Equal(t, "987654", s.Identity())
	stored, err := store.Get(ctx, repository.KeyTelegramID)
	require.NoError(t, err)
	assert.Equal(t, "987654", stored)
}

func TestSession_ClearNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSession(t)
	require.NoError(t, s.SetIdentity(ctx, "42"))

	var seen []string
	s.Subscribe(func(id string) { seen = append(seen, id) })
	unsubscribe := s.Subscribe(func(id string) { t.Fatal("removed listener called") })
	unsubscribe()

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, []string{""}, seen)

	_, err := store.Get(ctx, repository.KeyTelegramID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSession_SaveRegistration(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	var notified string
	s.Subscribe(func(id string) { notified = id })

	err := s.SaveRegistration(ctx, Registration{
		Name:       "Ana",
		Email:      "ana@example.com",
		TelegramID: "555",
	})
	require.NoError(t, err)
	assert.Equal(t, "555", notified)
	assert.True(t, s.IsLoggedIn())

	reg, err := s.Registration(ctx)
	require.NoError(t, err)
	assert.Equal(t, Registration{Name: "Ana", Email: "ana@example.com", Plan: "starter", TelegramID: "555"}, reg)
}

func TestSession_SaveRegistrationRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	assert.Error(t, s.SaveRegistration(ctx, Registration{Email: "a@b.c", TelegramID: "1"}))
	assert.Error(t, s.SaveRegistration(ctx, Registration{Name: "A", Email: "nope", TelegramID: "1"}))
	assert.Error(t, s.SaveRegistration(ctx, Registration{Name: "A", Email: "a@b.c", TelegramID: "x"}))
	assert.Error(t, s.SaveRegistration(ctx, Registration{Name: "A", Email: "a@b.c", TelegramID: "1", Plan: "gold"}))
	assert.False(t, s.IsLoggedIn())
}

func TestSession_SaveRegistrationRollsBack(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteLocalStore(database)
	boom := errors.New("disk full")
	s := New(store, &testutil.FailKeyUoW{DB: database, Key: repository.KeyUserPlan, Err: boom})

	err := s.SaveRegistration(ctx, Registration{Name: "Ana", Email: "a@b.c", TelegramID: "9"})
	require.ErrorIs(t, err, boom)
	assert.False(t, s.IsLoggedIn())

	reg, err := s.Registration(ctx)
	require.NoError(t, err)
	assert.Equal(t, Registration{}, reg)
}
