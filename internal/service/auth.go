package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zest/product-api/internal/events"
	"github.com/zest/product-api/internal/hash"
	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/models"
	"github.com/zest/product-api/internal/repo"
	"github.com/zest/product-api/internal/tokens"
)

const tokenType = "Bearer"

// AuthService drives the register / login / refresh flows: it consults the
// user store and password hasher, asks the signer for access tokens and
// rotates the per-user refresh row.
type AuthService struct {
	Repo       *repo.GormRepo
	Signer     *tokens.Signer
	RefreshTTL time.Duration
	Producer   *events.Producer
}

// AuthPayload is the combined result of a successful authentication.
type AuthPayload struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	ExpiresIn    int64    `json:"expiresIn"`
	Roles        []string `json:"roles"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an enabled user with the USER role and immediately
// issues tokens for it.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*AuthPayload, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)
	if fullName == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		l.Warn("register_conflict", "email", email)
		return nil, ErrConflict
	}

	userRole, err := s.Repo.FindRoleByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("register_failed", "reason", "USER role missing from reference data")
			return nil, ErrRoleNotConfigured
		}
		return nil, fmt.Errorf("load default role: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: pwHash,
		Enabled:      true,
		Roles:        []models.Role{*userRole},
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishUserEvent(ctx, "user_registered", user.Email)
	l.Info("register_success", "user_id", user.ID)

	return s.issuePayload(ctx, &user)
}

// Login verifies the credentials, then re-resolves the user from the store
// before issuing tokens. Role or enabled state may have changed between the
// two steps, so the verifier's snapshot is never trusted directly.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	candidate, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !candidate.Enabled || !hash.CheckPassword(candidate.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad credentials or disabled account")
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.FindUserByEmail(ctx, candidate.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("login_failed", "reason", "user vanished after verification")
			return nil, ErrAuthFailure
		}
		return nil, fmt.Errorf("re-fetch user: %w", err)
	}

	s.publishUserEvent(ctx, "user_logged_in", user.Email)
	l.Info("login_success", "user_id", user.ID)

	return s.issuePayload(ctx, user)
}

// Refresh consumes a refresh token value and rotates in a replacement.
// The presented value becomes unusable whether or not the call succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthPayload, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	claimed, err := s.Repo.ClaimRefresh(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrRefreshNotFound):
			l.Warn("refresh_failed", "reason", "unknown token")
			return nil, ErrInvalidRefreshToken
		case errors.Is(err, repo.ErrRefreshExpiredOrRevoked):
			l.Warn("refresh_failed", "reason", "token expired or revoked")
			return nil, ErrTokenExpiredOrRevoked
		default:
			return nil, fmt.Errorf("claim refresh token: %w", err)
		}
	}

	user, err := s.Repo.GetUserByID(ctx, claimed.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("refresh_failed", "reason", "token owner vanished", "user_id", claimed.UserID)
			return nil, ErrAuthFailure
		}
		return nil, fmt.Errorf("load token owner: %w", err)
	}

	l.Info("refresh_success", "user_id", user.ID)
	return s.issuePayload(ctx, user)
}

// issuePayload mints an access token for the user and rotates the refresh
// row, always producing a brand-new random value.
func (s *AuthService) issuePayload(ctx context.Context, user *models.User) (*AuthPayload, error) {
	roles := user.RoleNames()

	accessToken, err := s.Signer.Issue(user.Email, roles)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.Repo.RotateRefresh(ctx, user.ID, uuid.NewString(), time.Now().Add(s.RefreshTTL))
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return &AuthPayload{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		TokenType:    tokenType,
		ExpiresIn:    int64(s.Signer.TTL().Seconds()),
		Roles:        roles,
	}, nil
}

func (s *AuthService) publishUserEvent(ctx context.Context, eventType, email string) {
	err := s.Producer.Publish(ctx, events.TopicUserEvents, email, map[string]any{
		"type":  eventType,
		"email": email,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("user_event_publish_failed", "type", eventType, "error", err)
	}
}
