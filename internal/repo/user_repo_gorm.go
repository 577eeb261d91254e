package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"careportal/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureRoleCounters 建表后为每个角色播种计数器行，幂等
func EnsureRoleCounters(db *gorm.DB) error {
	for role := range domain.RolePrefix {
		var rc domain.RoleCounter
		err := db.First(&rc, "role = ?", role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if e := db.Create(&domain.RoleCounter{Role: role, Seq: 0}).Error; e != nil {
				return e
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(f domain.UserFilter) ([]domain.User, int64, error) {
	q := r.db.Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var users []domain.User
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) SetActive(id string, active bool) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepo) CountByRole(role domain.Role) (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// NextUniqueID 从每角色计数器原子分配下一个工号。
// 单条 UPDATE seq=seq+1 在 mysql/postgres 下自带行锁，
// 同事务内再读出新值，并发下不会发出重复号；
// users.unique_id 上的唯一索引是最后一道保险
func (r *UserRepo) NextUniqueID(role domain.Role) (string, error) {
	var seq int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.RoleCounter{}).
			Where("role = ?", role).
			Update("seq", gorm.Expr("seq + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("role counter missing for %s", role)
		}
		var rc domain.RoleCounter
		if err := tx.First(&rc, "role = ?", role).Error; err != nil {
			return err
		}
		seq = rc.Seq
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", domain.RolePrefix[role], seq), nil
}
