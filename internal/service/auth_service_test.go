package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"careportal/internal/core/auth"
	"careportal/internal/domain"
	"careportal/internal/repo"
)

func setupServices(t *testing.T) (*AuthService, *UserService, *repo.UserRepo) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.RoleCounter{}, &domain.Schedule{}))
	require.NoError(t, repo.EnsureRoleCounters(db))

	users := repo.NewUserRepo(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	log := zap.NewNop()
	return NewAuthService(users, jwter, log), NewUserService(users, log), users
}

func registerAdmin(t *testing.T, usersSvc *UserService) *domain.User {
	t.Helper()
	admin, err := usersSvc.RegisterAdmin(ProfileInput{
		Email:     "admin@x.com",
		FirstName: "Ada",
		LastName:  "Root",
	}, "Secret123")
	require.NoError(t, err)
	return admin
}

func TestLogin_OK(t *testing.T) {
	authSvc, userSvc, _ := setupServices(t)
	registerAdmin(t, userSvc)

	u, tok, err := authSvc.Login("admin@x.com", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "ADM00001", u.UniqueID)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	authSvc, userSvc, _ := setupServices(t)
	registerAdmin(t, userSvc)

	_, tok, err := authSvc.Login("  ADMIN@X.COM ", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

// 三种失败原因必须返回同一个错误，调用方无从区分
func TestLogin_IndistinguishableFailures(t *testing.T) {
	authSvc, userSvc, users := setupServices(t)
	admin := registerAdmin(t, userSvc)

	// 密码不对
	_, _, err := authSvc.Login("admin@x.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 邮箱不存在
	_, _, err = authSvc.Login("ghost@x.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 账号停用，哪怕密码正确
	require.NoError(t, users.SetActive(admin.ID, false))
	_, _, err = authSvc.Login("admin@x.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	authSvc, userSvc, users := setupServices(t)
	admin := registerAdmin(t, userSvc)

	// 开一个医生，拿到临时密码，首登标记应为 true
	doc, tempPwd, err := userSvc.Provision(admin, domain.RoleDoctor, ProfileInput{
		Email: "d@x.com", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)
	assert.True(t, doc.IsFirstLogin)
	require.GreaterOrEqual(t, len(tempPwd), 8)

	// 旧密码错 → 拒绝
	_, err = authSvc.ChangePassword(doc, "nope", "NewSecret123")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// 新密码太短 → 拒绝
	_, err = authSvc.ChangePassword(doc, tempPwd, "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// 正常改密：拿到新 token，首登标记翻成 false，旧临时密码失效
	tok, err := authSvc.ChangePassword(doc, tempPwd, "NewSecret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	got, err := users.FindByID(doc.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFirstLogin)

	_, _, err = authSvc.Login("d@x.com", tempPwd)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = authSvc.Login("d@x.com", "NewSecret123")
	assert.NoError(t, err)
}
