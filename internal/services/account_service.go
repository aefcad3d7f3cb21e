package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moodlog/internal/models/db_models"
	"moodlog/internal/models/request_models"
	"moodlog/internal/models/response_models"
	"moodlog/internal/repositories"
	"moodlog/internal/storage"
	"moodlog/pkg/memcache"
	"moodlog/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Me(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateAvatar(ctx context.Context, accountID uuid.UUID, image io.Reader) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo    repositories.AccountRepository
	jwt            *utils.JWTManager
	denylist       memcache.TokenDenylist
	store          storage.ObjectStore
	maxUploadBytes int64
	loc            *time.Location
	log            *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	denylist memcache.TokenDenylist,
	store storage.ObjectStore,
	maxUploadBytes int64,
	loc *time.Location,
	log *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:    accountRepo,
		jwt:            jwt,
		denylist:       denylist,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		loc:            loc,
		log:            log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		// lost a concurrent registration for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return a.toAccountResponse(newAccount), nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	// unknown email and wrong password look the same to the caller
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.CreateToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}

	a.log.Debug("login", zap.String("account_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *AccountService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return utils.ErrUnauthorized
	}
	if err := a.denylist.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (a *AccountService) Me(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return a.toAccountResponse(account), nil
}

func (a *AccountService) UpdateAvatar(ctx context.Context, accountID uuid.UUID, image io.Reader) (*response_models.AccountResponse, error) {
	if image == nil {
		return nil, utils.ErrMissingImage
	}

	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	img, err := storage.ReadImage(image, a.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey("avatars", accountID, img.Ext)
	url, err := a.store.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}

	if err := a.accountRepo.UpdateAvatar(ctx, accountID, url, key); err != nil {
		a.deleteObject(ctx, key)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if account.AvatarKey != "" {
		a.deleteObject(ctx, account.AvatarKey)
	}

	account.AvatarURL = url
	account.AvatarKey = key
	return a.toAccountResponse(account), nil
}

func (a *AccountService) deleteObject(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, key); err != nil {
		a.log.Warn("failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}

func (a *AccountService) toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Email:     account.Email,
		AvatarURL: account.AvatarURL,
		CreatedAt: utils.FromUnixMillis(account.CreatedAt, a.loc),
	}
}
