package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service/auth"
	"economy_backend/pkg/pass"
	"economy_backend/pkg/token"
)

type fakeAuthRepo struct {
	admins   map[string]*model.Admin
	sessions map[string]*model.Session
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		admins:   make(map[string]*model.Admin),
		sessions: make(map[string]*model.Session),
	}
}

func (r *fakeAuthRepo) CreateSession(ctx context.Context, session *model.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (string, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return s.RefreshToken, nil
}

func (r *fakeAuthRepo) DeleteSession(ctx context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeAuthRepo) GetAdminBySessionID(ctx context.Context, sessionID string) (*model.Admin, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, a := range r.admins {
		if a.ID == s.AdminID {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAuthRepo) GetAdminByLogin(ctx context.Context, login string) (*model.Admin, error) {
	a, ok := r.admins[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (r *fakeAuthRepo) CreateAdmin(ctx context.Context, admin *model.Admin) (int64, error) {
	admin.ID = int64(len(r.admins) + 1)
	r.admins[admin.Login] = admin
	return admin.ID, nil
}

type jwtConfigStub struct{}

func (jwtConfigStub) AccessTokenSecretKey() []byte        { return []byte("test-secret") }
func (jwtConfigStub) AccessTokenDuration() time.Duration  { return 15 * time.Minute }
func (jwtConfigStub) RefreshTokenDuration() time.Duration { return 24 * time.Hour }

func seedAdmin(t *testing.T, repo *fakeAuthRepo) {
	t.Helper()
	hash, err := pass.HashPassword("secret")
	require.NoError(t, err)
	_, err = repo.CreateAdmin(context.Background(), &model.Admin{Login: "root", Password: hash})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAdmin(t, repo)

	serv := auth.NewAuthService(repo, jwtConfigStub{})

	data, err := serv.Login(context.Background(), "root", "secret")
	require.NoError(t, err)

	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.SessionID)

	// Access токен верифицируется тем же секретом
	claims, err := token.VerifyToken(data.AccessToken, jwtConfigStub{}.AccessTokenSecretKey())
	require.NoError(t, err)
	assert.Equal(t, "1", claims.ID)

	// В хранилище лежит хэш, а не сам refresh токен
	stored := repo.sessions[data.SessionID]
	require.NotNil(t, stored)
	assert.NotEqual(t, data.RefreshToken, stored.RefreshToken)
	assert.True(t, token.VerifyRefreshToken(data.RefreshToken, stored.RefreshToken))
}

func TestLoginRejections(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAdmin(t, repo)

	serv := auth.NewAuthService(repo, jwtConfigStub{})
	ctx := context.Background()

	_, err := serv.Login(ctx, "root", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = serv.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAdmin(t, repo)

	serv := auth.NewAuthService(repo, jwtConfigStub{})
	ctx := context.Background()

	data, err := serv.Login(ctx, "root", "secret")
	require.NoError(t, err)

	accessToken, err := serv.Refresh(ctx, &model.AuthData{
		SessionID:    data.SessionID,
		RefreshToken: data.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// Чужой refresh токен не проходит
	_, err = serv.Refresh(ctx, &model.AuthData{
		SessionID:    data.SessionID,
		RefreshToken: "forged",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	_, err = serv.Refresh(ctx, &model.AuthData{
		SessionID:    "unknown",
		RefreshToken: data.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestLogout(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAdmin(t, repo)

	serv := auth.NewAuthService(repo, jwtConfigStub{})
	ctx := context.Background()

	data, err := serv.Login(ctx, "root", "secret")
	require.NoError(t, err)

	require.NoError(t, serv.Logout(ctx, data.SessionID))

	_, err = serv.Refresh(ctx, &model.AuthData{
		SessionID:    data.SessionID,
		RefreshToken: data.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}
