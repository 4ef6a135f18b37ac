package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/response"
)

var (
	errEmailTaken    = errors.New("email already registered")
	errUsernameTaken = errors.New("username already registered")
)

// TokenGenerator はログイン・登録時にアクセストークンを発行します。
type TokenGenerator interface {
	GenerateToken(user *models.User) (string, error)
}

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	uow    repositories.UnitOfWork
	tokens TokenGenerator
	logger *zap.Logger
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(uow repositories.UnitOfWork, tokens TokenGenerator, logger *zap.Logger) *UserService {
	return &UserService{uow: uow, tokens: tokens, logger: logger.Named("users")}
}

// Register はユーザーを登録し、トークンを返します。
func (s *UserService) Register(ctx context.Context, req models.UserRegisterRequest) response.Envelope {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return response.BadRequest(response.MsgInvalidRole)
	}

	hashedPassword, err := HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return response.BadRequest(response.MsgPasswordTooLong)
	}
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return response.InternalError(response.MsgFailRegisterUser)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashedPassword,
		Roles:        []models.Role{role},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	err = s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		taken, err := tx.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken
		}
		taken, err = tx.Users().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return errUsernameTaken
		}
		if err := tx.Users().Add(ctx, user); err != nil {
			return err
		}
		return tx.Users().AddRole(ctx, user.ID, role)
	})
	if err != nil {
		switch {
		case errors.Is(err, errEmailTaken):
			return response.BadRequest(response.MsgEmailTaken)
		case errors.Is(err, errUsernameTaken), errors.Is(err, repositories.ErrDuplicate):
			return response.BadRequest(response.MsgUsernameTaken)
		}
		s.logger.Error("failed to register user", zap.String("username", user.Username), zap.Error(err))
		return response.InternalError(response.MsgFailRegisterUser)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Stringer("user_id", user.ID), zap.Error(err))
		return response.InternalError(response.MsgFailRegisterUser)
	}

	s.logger.Info("user registered", zap.Stringer("user_id", user.ID), zap.String("role", string(role)))
	return response.OK(response.MsgUserRegistered, models.TokenResponse{Token: token})
}

// Login はユーザー名またはメールアドレスで認証します。
// 存在しないユーザーとパスワード誤りは同じメッセージを返します。
func (s *UserService) Login(ctx context.Context, req models.UserLoginRequest) response.Envelope {
	user, err := s.uow.Users().FindByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.logger.Warn("login with unknown user")
			return response.BadRequest(response.MsgInvalidCredentials)
		}
		s.logger.Error("failed to load user for login", zap.Error(err))
		return response.InternalError(response.MsgFailLogin)
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("login with wrong password", zap.Stringer("user_id", user.ID))
		return response.BadRequest(response.MsgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Stringer("user_id", user.ID), zap.Error(err))
		return response.InternalError(response.MsgFailLogin)
	}
	return response.OK(response.MsgLoginSuccessful, models.TokenResponse{Token: token})
}

// Profile はログイン中のユーザー自身の情報を返します。
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) response.Envelope {
	user, env, ok := s.find(ctx, userID)
	if !ok {
		return env
	}
	return response.OK(response.MsgUserRetrieved, models.ProfileResponse{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.PrimaryRole(),
		CreatedAt: user.CreatedAt,
	})
}

// GetByID は管理者向けにユーザーを返します。
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) response.Envelope {
	user, env, ok := s.find(ctx, id)
	if !ok {
		return env
	}
	return response.OK(response.MsgUserRetrieved, user.ToResponse())
}

// List は管理者向けに全ユーザーを返します。0件でも成功です。
func (s *UserService) List(ctx context.Context) response.Envelope {
	users, err := s.uow.Users().List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return response.InternalError(response.MsgFailGetUsers)
	}

	items := make([]models.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, users[i].ToResponse())
	}
	return response.OK(response.MsgUsersRetrieved, items)
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*models.User, response.Envelope, bool) {
	user, err := s.uow.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, response.NotFound(response.MsgUserNotFound), false
		}
		s.logger.Error("failed to get user", zap.Stringer("user_id", id), zap.Error(err))
		return nil, response.InternalError(response.MsgFailGetUser), false
	}
	return user, response.Envelope{}, true
}
