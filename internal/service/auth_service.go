package service

import (
	"strings"

	"go.uber.org/zap"

	"careportal/internal/core/auth"
	"careportal/internal/domain"
	"careportal/pkg/utils"
)

const minPasswordLen = 8

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

// NormalizeEmail 全小写 + 去空白，入库前统一做
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login 三种失败（查无此人 / 密码不符 / 账号停用）一律返回
// ErrInvalidCredentials，响应体不泄露具体原因。
// 密码不匹配时照样走过 bcrypt 比较，耗时侧不留明显差异
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		// 对不存在的账号也做一次哈希比较，拉平响应时间
		utils.CheckPassword(password, dummyHash)
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	s.log.Info("login ok", zap.String("uid", u.ID), zap.String("role", string(u.Role)))
	return u, tok, nil
}

// ChangePassword 校验旧密码后换新，并清掉首登标记，返回新 token
func (s *AuthService) ChangePassword(u *domain.User, current, next string) (string, error) {
	if len(next) < minPasswordLen {
		return "", ErrWeakPassword
	}
	if !utils.CheckPassword(current, u.PasswordHash) {
		return "", ErrPasswordMismatch
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return "", err
	}
	u.PasswordHash = hash
	u.IsFirstLogin = false
	if err := s.users.Update(u); err != nil {
		return "", err
	}
	tok, err := s.jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return "", err
	}
	s.log.Info("password changed", zap.String("uid", u.ID))
	return tok, nil
}

// 与真实 bcrypt 输出同构的占位哈希，仅用于拉平未知邮箱的比较耗时
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
