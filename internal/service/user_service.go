package service

import (
	"fmt"

	"go.uber.org/zap"

	"careportal/internal/core/database"
	"careportal/internal/domain"
	"careportal/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// ProfileInput 开号/注册共用的资料字段
type ProfileInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// RegisterAdmin 首个管理员自注册。系统里已有 admin 后该入口关闭
func (s *UserService) RegisterAdmin(in ProfileInput, password string) (*domain.User, error) {
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	email := NormalizeEmail(in.Email)
	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailExists
	}
	n, err := s.users.CountByRole(domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAdminExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
		IsFirstLogin: false, // 自己设的密码，不算临时
	}
	if err := s.createWithUniqueID(u); err != nil {
		return nil, err
	}
	s.log.Info("admin registered", zap.String("uid", u.ID), zap.String("uniqueId", u.UniqueID))
	return u, nil
}

// Provision 开号：按策略表校验 actor 权限，分配工号，
// 生成临时密码。明文临时密码只在返回值里出现这一次
func (s *UserService) Provision(actor *domain.User, target domain.Role, in ProfileInput) (*domain.User, string, error) {
	if !target.Valid() {
		return nil, "", ErrRoleNotAllowed
	}
	if !domain.CanProvision(actor.Role, target) {
		return nil, "", ErrRoleNotAllowed
	}
	email := NormalizeEmail(in.Email)
	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrEmailExists
	}

	tempPwd, err := utils.NewTempPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := utils.HashPassword(tempPwd)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		Role:         target,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
		IsFirstLogin: true,
		CreatedBy:    actor.ID,
	}
	if err := s.createWithUniqueID(u); err != nil {
		return nil, "", err
	}
	s.log.Info("user provisioned",
		zap.String("uid", u.ID),
		zap.String("uniqueId", u.UniqueID),
		zap.String("role", string(target)),
		zap.String("by", actor.ID),
	)
	return u, tempPwd, nil
}

// createWithUniqueID 分配工号后落库。工号来自原子计数器，正常不会撞；
// 撞上唯一索引（比如计数器被人工动过）就重新分配一次
func (s *UserService) createWithUniqueID(u *domain.User) error {
	for attempt := 0; attempt < 2; attempt++ {
		id, err := s.users.NextUniqueID(u.Role)
		if err != nil {
			return err
		}
		u.UniqueID = id
		err = s.users.Create(u)
		if err == nil {
			return nil
		}
		if database.IsDupKey(err) {
			// 邮箱撞唯一索引不重试，直接报冲突
			if existing, e := s.users.FindByEmail(u.Email); e == nil && existing != nil {
				return ErrEmailExists
			}
			continue
		}
		return err
	}
	return fmt.Errorf("unique id allocation kept colliding for role %s", u.Role)
}

func (s *UserService) List(f domain.UserFilter) ([]domain.User, int64, error) {
	return s.users.List(f)
}

func (s *UserService) SetActive(id string, active bool) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := s.users.SetActive(id, active); err != nil {
		return nil, err
	}
	u.IsActive = active
	s.log.Info("user active flag changed", zap.String("uid", id), zap.Bool("active", active))
	return u, nil
}
