package service

import "errors"

var (
	// ErrInvalidCredentials 登录失败统一返回这一个错误：
	// 邮箱不存在 / 密码不对 / 账号停用，对外不可区分
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailExists      = errors.New("email already exists")
	ErrAdminExists      = errors.New("admin already registered")
	ErrRoleNotAllowed   = errors.New("not allowed to create this role")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("current password is incorrect")
	ErrWeakPassword     = errors.New("password must be at least 8 characters")
)
