package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on refresh sessions.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest, client ClientInfo) (*response.TokenPairResponse, error)
	Logout(ctx context.Context, req *request.LogoutRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	tokens *utils.TokenManager
	now    Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	now Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		now:    now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Signup validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Email and username must be free
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, FieldError("email", "A user with this email already exists")
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, FieldError("username", "A user with that username already exists")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, FieldError("username", "A user with that username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 5. Log the new user in
	tokens, err := s.issuePair(ctx, user, client, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{User: response.UserToResponse(user), Tokens: *tokens}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Find user by email, then by username
	var user *entity.User
	var err error

	if strings.Contains(req.Username, "@") {
		user, err = s.repo.User.FindByEmail(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user by username: %w", err)
		}
	}

	// 3. Check credentials
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("identifier", req.Username))
		return nil, UnauthorizedError("Invalid credentials")
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, UnauthorizedError("Account is deactivated")
	}

	// 5. Issue tokens
	tokens, err := s.issuePair(ctx, user, client, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{User: response.UserToResponse(user), Tokens: *tokens}, nil
}

// Refresh rotates the refresh token. The presented session is revoked and
// its successor recorded together, so a token can only be redeemed once.
func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest, client ClientInfo) (*response.TokenPairResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	session, user, err := s.resolveRefresh(ctx, req.Refresh)
	if err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user, client, &session.Token)
}

func (s *authService) Logout(ctx context.Context, req *request.LogoutRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	if req.All {
		session, _, err := s.resolveRefresh(ctx, req.Refresh)
		if err != nil {
			return err
		}
		ended, err := s.repo.Session.RevokeAll(ctx, session.UserID)
		if err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		s.log.Info("User logged out everywhere",
			zap.String("user_id", session.UserID.String()),
			zap.Int64("sessions", ended))
		return nil
	}

	claims, err := s.tokens.Parse(req.Refresh, utils.RefreshToken)
	if err != nil {
		return UnauthorizedError("Invalid or expired refresh token")
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return UnauthorizedError("Invalid or expired refresh token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return UnauthorizedError("Invalid or expired refresh token")
	}

	if err := s.repo.Session.Revoke(ctx, userID, jti); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UnauthorizedError("Session already ended")
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != user.Email {
		other, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil {
			return nil, FieldError("email", "A user with this email already exists")
		}
		user.Email = *req.Email
	}
	user.UpdatedAt = s.now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, FieldError("email", "A user with this email already exists")
		}
		return nil, fmt.Errorf("update user %s: %w", user.ID, err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) activeUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	if user == nil || !user.IsActive {
		return nil, UnauthorizedError("User not found or inactive")
	}
	return user, nil
}

func (s *authService) resolveRefresh(ctx context.Context, token string) (*entity.Session, *entity.User, error) {
	claims, err := s.tokens.Parse(token, utils.RefreshToken)
	if err != nil {
		return nil, nil, UnauthorizedError("Invalid or expired refresh token")
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, nil, UnauthorizedError("Invalid or expired refresh token")
	}

	session, err := s.repo.Session.FindActive(ctx, jti)
	if err != nil {
		return nil, nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil, UnauthorizedError("Invalid or expired refresh token")
	}

	user, err := s.activeUser(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// issuePair signs an access and a refresh token and records the refresh
// session. With a previous jti the old session is rotated out instead.
func (s *authService) issuePair(ctx context.Context, user *entity.User, client ClientInfo, previous *uuid.UUID) (*response.TokenPairResponse, error) {
	access, err := s.tokens.Issue(user.ID, string(user.Role), utils.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.tokens.Issue(user.ID, string(user.Role), utils.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID:    user.ID,
		Token:     refresh.JTI,
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: refresh.ExpiresAt,
	}

	if previous == nil {
		err = s.repo.Session.Create(ctx, session)
	} else {
		err = s.repo.Session.Rotate(ctx, *previous, session)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, UnauthorizedError("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	return &response.TokenPairResponse{
		Access:           access.Token,
		Refresh:          refresh.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
