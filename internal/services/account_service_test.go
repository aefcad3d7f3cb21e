package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moodlog/internal/models/db_models"
	"moodlog/internal/models/request_models"
	"moodlog/internal/repositories"
	"moodlog/internal/testutil"
	"moodlog/pkg/memcache"
	"moodlog/pkg/utils"
)

func newAccountService(e *env) (AccountServiceInterface, *utils.JWTManager, *memcache.MemoryTokenDenylist) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	denylist := memcache.NewMemoryTokenDenylist()
	return NewAccountService(e.accounts, jwtManager, denylist, e.disk, 1<<20, time.UTC, zap.NewNop()), jwtManager, denylist
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	svc, jwtManager, _ := newAccountService(e)
	ctx := context.Background()

	created, err := svc.Register(ctx, request_models.SignUpRequest{
		DisplayName: "Linh",
		Email:       "  Linh@Example.com ",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "linh@example.com", created.Email)

	_, err = svc.Register(ctx, request_models.SignUpRequest{DisplayName: "Again", Email: "linh@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "LINH@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := jwtManager.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.Subject)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "linh@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "ghost@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	var stored struct{ PasswordHash string }
	require.NoError(t, e.db.Table("accounts").Select("password_hash").Where("email = ?", "linh@example.com").Scan(&stored).Error)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

// staleLookupRepo misses on email lookup, as if a concurrent registration
// committed between the check and the insert.
type staleLookupRepo struct {
	repositories.AccountRepository
}

func (staleLookupRepo) FindByEmail(context.Context, string) (*db_models.Account, error) {
	return nil, nil
}

func TestAccountService_RegisterDuplicateAtInsert(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.account(t, "twin@example.com")

	svc := NewAccountService(staleLookupRepo{e.accounts}, utils.NewJWTManager("test-secret", time.Hour),
		memcache.NewMemoryTokenDenylist(), e.disk, 1<<20, time.UTC, zap.NewNop())

	_, err := svc.Register(ctx, request_models.SignUpRequest{DisplayName: "Twin", Email: "twin@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	assert.NotErrorIs(t, err, utils.ErrDatabaseError)
}

func TestAccountService_Logout(t *testing.T) {
	e := newEnv(t)
	svc, _, denylist := newAccountService(e)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, svc.Logout(ctx, "", time.Now().Add(time.Hour)), utils.ErrUnauthorized)
}

func TestAccountService_MeAndAvatar(t *testing.T) {
	e := newEnv(t)
	svc, _, _ := newAccountService(e)
	ctx := context.Background()
	accountID := e.account(t, "me@example.com")

	me, err := svc.Me(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Empty(t, me.AvatarURL)

	first, err := svc.UpdateAvatar(ctx, accountID, bytes.NewReader(testutil.PNGBytes(t)))
	require.NoError(t, err)
	assert.Contains(t, first.AvatarURL, "/uploads/avatars/"+accountID.String()+"/")

	second, err := svc.UpdateAvatar(ctx, accountID, bytes.NewReader(testutil.PNGBytes(t)))
	require.NoError(t, err)
	assert.NotEqual(t, first.AvatarURL, second.AvatarURL)

	me, err = svc.Me(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, second.AvatarURL, me.AvatarURL)

	_, err = svc.UpdateAvatar(ctx, accountID, bytes.NewReader([]byte("plain text")))
	assert.ErrorIs(t, err, utils.ErrInvalidImage)
}
