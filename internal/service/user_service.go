package service

import (
	"context"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/dto"
	"github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/logger"
	"github.com/haierkeys/note-graph-service/pkg/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Signup 用户注册
	Signup(ctx context.Context, params *dto.UserSignupRequest) (*dto.UserDTO, error)

	// Login 用户登录，RememberMe 时额外签发刷新令牌
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.LoginResponse, error)

	// Refresh 使用刷新令牌换取新的令牌对
	Refresh(ctx context.Context, refreshToken, clientIP string) (*dto.TokenPairResponse, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, lg *zap.Logger, config *ServiceConfig) UserService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{ID: user.UID, Email: user.Email}
}

// Signup 用户注册
func (s *userService) Signup(ctx context.Context, params *dto.UserSignupRequest) (user *dto.UserDTO, err error) {
	defer func() { observe(authAttempts, "signup", err) }()

	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	email := domain.NormalizeEmail(params.Email)
	if !util.IsValidPassword(params.Password) {
		return nil, code.ErrorPasswordNotValid
	}

	// 检查邮箱是否已存在
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, toCodeError(err, nil, nil)
	}
	if existing != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 生成密码哈希
	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	created, err := s.userRepo.Create(ctx, &domain.User{Email: email, Password: hash})
	if err != nil {
		// lost a race with a concurrent signup of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, code.ErrorUserEmailAlreadyExists
		}
		s.logger.Error("user signup failed", zap.String(logger.FieldEmail, email), zap.Error(err))
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	s.logger.Info("user signed up", zap.Int64(logger.FieldUID, created.UID))
	out := s.domainToDTO(created)
	return &out, nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (resp *dto.LoginResponse, err error) {
	defer func() { observe(authAttempts, "login", err) }()

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserLoginPasswordFailed
		}
		return nil, toCodeError(err, nil, nil)
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	access, err := s.tokenManager.Generate(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	resp = &dto.LoginResponse{AccessToken: access, User: s.domainToDTO(user)}
	if params.RememberMe {
		refresh, err := s.tokenManager.GenerateRefresh(user.UID, user.Email, clientIP)
		if err != nil {
			return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
		}
		resp.RefreshToken = &refresh
	}
	return resp, nil
}

// Refresh 刷新令牌，同时轮换刷新令牌
func (s *userService) Refresh(ctx context.Context, refreshToken, clientIP string) (resp *dto.TokenPairResponse, err error) {
	defer func() { observe(authAttempts, "refresh", err) }()

	if refreshToken == "" {
		return nil, code.ErrorRefreshTokenRequired
	}

	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, code.ErrorInvalidRefreshToken
	}

	// the account may have been removed since the token was issued
	user, err := s.userRepo.GetByUID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorInvalidRefreshToken
		}
		return nil, toCodeError(err, nil, nil)
	}

	access, err := s.tokenManager.Generate(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	refresh, err := s.tokenManager.GenerateRefresh(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}
