package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/config"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// POSLogin authenticates a pharmacist with email + PIN and opens their
	// shift session in the same call.
	POSLogin(ctx context.Context, req dto.POSLoginRequest) (*dto.POSLoginResponse, error)
	EndPOSSession(ctx context.Context, userID uuid.UUID) (*dto.EndSessionResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	ReactivateUser(ctx context.Context, id uuid.UUID) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

const bcryptCost = 12

// resetTokenPrefix namespaces reset tokens in Redis.
const resetTokenPrefix = "pwreset:"

type authService struct {
	repo     repository.UserRepository
	sessions SessionService
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(repo repository.UserRepository, sessions SessionService, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{repo: repo, sessions: sessions, rdb: rdb, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, apierror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apierror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        userToResponse(user),
	}, nil
}

func (s *authService) POSLogin(ctx context.Context, req dto.POSLoginRequest) (*dto.POSLoginResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_id: %w", err)
	}
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, apierror.ErrInvalidCredentials
	}
	if !user.IsActive || user.PINHash == nil {
		return nil, apierror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PINHash), []byte(req.PIN)); err != nil {
		return nil, apierror.ErrInvalidCredentials
	}
	// A branch-pinned pharmacist can only open a session at their own branch.
	if user.BranchID != nil && *user.BranchID != branchID {
		return nil, fmt.Errorf("%w: user is assigned to another branch", apierror.ErrPrecondition)
	}

	ps, ss, err := s.sessions.OpenForPharmacist(ctx, user.ID, branchID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.POSLoginResponse{
		AccessToken:    accessToken,
		SessionID:      ps.ID.String(),
		SalesSessionID: ss.ID.String(),
		User:           userToResponse(user),
	}, nil
}

func (s *authService) EndPOSSession(ctx context.Context, userID uuid.UUID) (*dto.EndSessionResponse, error) {
	return s.sessions.EndSessionByUser(ctx, userID)
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", apierror.ErrConflict, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if req.PIN != nil {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcryptCost)
		if err != nil {
			return nil, err
		}
		h := string(pinHash)
		user.PINHash = &h
	}
	if req.BranchID != nil {
		branchID, err := uuid.Parse(*req.BranchID)
		if err != nil {
			return nil, fmt.Errorf("invalid branch_id: %w", err)
		}
		user.BranchID = &branchID
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.PIN != nil {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcryptCost)
		if err != nil {
			return nil, err
		}
		h := string(pinHash)
		user.PINHash = &h
	}
	if req.BranchID != nil {
		branchID, err := uuid.Parse(*req.BranchID)
		if err != nil {
			return nil, fmt.Errorf("invalid branch_id: %w", err)
		}
		user.BranchID = &branchID
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *authService) ReactivateUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}

// ForgotPassword mints an opaque token and stores it in Redis with a TTL.
// The token maps back to the user ID; expiry is handled entirely by Redis.
// Returns the token so the delivery channel stays out of this service.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		// Do not reveal whether the address exists.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	ttl := time.Duration(s.cfg.ResetTokenTTLMin) * time.Minute
	if err := s.rdb.Set(ctx, resetTokenPrefix+token, user.ID.String(), ttl).Err(); err != nil {
		return "", err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("password reset token issued")
	return token, nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	key := resetTokenPrefix + req.Token
	userIDStr, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apierror.ErrInvalidCredentials
		}
		return err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return apierror.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	// Single use: burn the token once the password changes.
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to delete used reset token")
	}
	return nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	if user.BranchID != nil {
		claims["branch_id"] = user.BranchID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.BranchID != nil {
		id := u.BranchID.String()
		resp.BranchID = &id
	}
	return resp
}
