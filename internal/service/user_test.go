package service

import (
	"context"
	"testing"

	"ClipKeeper/internal/model"
	"ClipKeeper/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo — in-memory реализация UserRepository.
type fakeUserRepo struct {
	byLogin map[string]*model.User
	nextID  int64
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byLogin: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byLogin[user.Login] = user
	return nil
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (*model.User, error) {
	return f.byLogin[login], nil
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "secret", u.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))

	got, err := svc.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserService_RegisterDuplicateLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "p1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", "p2")
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestUserService_AuthenticateRejectsBadCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "right")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_RegisterRequiresCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), "", "p")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), "l", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
