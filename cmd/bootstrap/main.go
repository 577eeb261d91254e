// bootstrap 在没有任何 admin 的新环境里开出第一个管理员账号，
// 等价于 POST /api/admin/register，给不方便走 HTTP 的运维用
package main

import (
	"flag"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"careportal/internal/core/config"
	"careportal/internal/core/database"
	"careportal/internal/core/logger"
	"careportal/internal/domain"
	"careportal/internal/repo"
	"careportal/internal/service"
)

func main() {
	var (
		email     = flag.String("email", "", "admin email (required)")
		password  = flag.String("password", "", "admin password (required, min 8 chars)")
		firstName = flag.String("first-name", "Admin", "first name")
		lastName  = flag.String("last-name", "User", "last name")
		phone     = flag.String("phone", "", "phone (optional)")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.RoleCounter{}, &domain.Schedule{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}
	if err := repo.EnsureRoleCounters(db); err != nil {
		log.Fatal("seed role counters failed", zap.Error(err))
	}

	users := service.NewUserService(repo.NewUserRepo(db), log)
	u, err := users.RegisterAdmin(service.ProfileInput{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
	}, *password)
	if err != nil {
		log.Fatal("bootstrap admin failed", zap.Error(err))
	}
	log.Info("admin created",
		zap.String("uniqueId", u.UniqueID),
		zap.String("email", u.Email),
	)
}
