package services

import (
	"context"
	"fmt"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/repositories"
	"ops-portal/pkg/config"
	"ops-portal/pkg/constants"
	apperrors "ops-portal/pkg/errors"
	"ops-portal/pkg/service"
	"ops-portal/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	authConfig config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		authConfig: authConfig,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		// Не раскрываем, существует ли такой email.
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}

	if err := utils.CheckPassword(user.Password, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.resetAttempts(ctx, user.ID)

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponseDTO{
		Tokens: dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken},
		User:   toUserDTO(user),
	}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Удаленный пользователь не может обновить сессию.
	if _, err := s.userRepo.FindUser(ctx, claims.UserID); err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(user)
	return &result, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	} else if err != redis.Nil {
		s.logger.Error("ошибка проверки блокировки аккаунта", zap.Error(err), zap.Uint64("user_id", userID))
	}
	return nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, userID)

	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Error("ошибка подсчета попыток входа", zap.Error(err), zap.Uint64("user_id", userID))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.authConfig.LockoutDuration); err != nil {
			s.logger.Error("не удалось выставить TTL счетчику попыток", zap.Error(err))
		}
	}

	if attempts >= int64(s.authConfig.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)
		if err := s.cacheRepo.Set(ctx, lockoutKey, "locked", s.authConfig.LockoutDuration); err != nil {
			s.logger.Error("не удалось заблокировать аккаунт", zap.Error(err), zap.Uint64("user_id", userID))
			return
		}
		s.logger.Warn("аккаунт заблокирован из-за превышения числа попыток входа",
			zap.Uint64("user_id", userID),
			zap.Int64("attempts", attempts),
		)
	}
}

func (s *AuthService) resetAttempts(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, userID)
	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Error("не удалось сбросить счетчик попыток входа", zap.Error(err), zap.Uint64("user_id", userID))
	}
}

func toUserDTO(user *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:            user.ID,
		Fio:           user.Fio,
		Email:         user.Email,
		RoleID:        user.RoleID,
		RoleName:      user.RoleName,
		DepartmentID:  user.DepartmentID,
		DepartmentKey: user.DepartmentKey,
		CreatedAt:     user.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     user.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
