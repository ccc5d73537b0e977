package user

import (
	"context"
	"errors"
	"regexp"
	"time"

	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/authsdk"
	"terminal-terrace/course-platform/packages/email"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const appName = "Course Platform"

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{5,15}$`)

// WelcomeMailer 注册欢迎邮件
type WelcomeMailer interface {
	SendWelcome(to string, data email.WelcomeData) error
}

// TokenConfig 访问令牌参数
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type UserService struct {
	repo   *UserRepository
	token  TokenConfig
	mailer WelcomeMailer
	log    *logger.Logger
}

// NewUserService mailer 可以为 nil，此时不发送欢迎邮件
func NewUserService(repo *UserRepository, token TokenConfig, mailer WelcomeMailer, log *logger.Logger) *UserService {
	return &UserService{repo: repo, token: token, mailer: mailer, log: log}
}

// Register 账号密码注册
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	// 1. 参数校验
	if !usernameRegex.MatchString(req.Username) {
		return nil, response.NewBadRequest("用户名只能包含字母、数字和下划线，长度5-15个字符")
	}

	// 2. 检查用户名和邮箱是否已存在
	existing, err := s.repo.FindConflict(ctx, req.Username, req.Email)
	if err == nil {
		if existing.Username == req.Username {
			return nil, response.NewConflict("用户名已存在")
		}
		return nil, response.NewConflict("邮箱已被注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. 密码加密
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewInternal(err)
	}

	// 4. 创建用户
	newUser := &user.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hashed),
		Role:         user.RoleUser,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("用户名或邮箱已被占用", response.WithError(err))
		}
		return nil, err
	}

	// 5. 欢迎邮件，失败不影响注册
	if s.mailer != nil {
		go func(to, username string) {
			if err := s.mailer.SendWelcome(to, email.WelcomeData{AppName: appName, Username: username}); err != nil {
				s.log.Warn("发送欢迎邮件失败", "user_id", newUser.ID, "error", err)
			}
		}(newUser.Email, newUser.Username)
	}

	resp := ToUserResponse(newUser)
	return &resp, nil
}

// Login 用户名或邮箱登录，签发访问令牌
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.FindByAccount(ctx, req.Account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("用户名或密码错误")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewUnauthorized("用户名或密码错误")
	}
	if !u.IsActive {
		return nil, response.NewForbidden("账号已被禁用")
	}

	token, err := authsdk.GenerateToken(authsdk.UserContext{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}, s.token.Secret, s.token.TTL)
	if err != nil {
		return nil, response.NewInternal(err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.token.TTL.Seconds()),
		User:        ToUserResponse(u),
	}, nil
}

// Me 当前用户信息
func (s *UserService) Me(ctx context.Context, userID uint) (*UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("用户不存在")
		}
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// UpdateRole 修改用户角色，仅全局管理员可用
func (s *UserService) UpdateRole(ctx context.Context, actor permission.Actor, userID uint, role user.Role) (*UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbidden("只有管理员可以修改角色")
	}
	if !role.Valid() {
		return nil, response.NewBadRequest("无效的角色")
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("用户不存在")
		}
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, u.ID, role); err != nil {
		return nil, err
	}
	u.Role = role

	s.log.Info("用户角色已修改", "operator_id", actor.ID, "user_id", u.ID, "role", role)
	resp := ToUserResponse(u)
	return &resp, nil
}
