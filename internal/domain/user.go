package domain

import "time"

// Role 创建后不可变更
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
)

// RolePrefix 工号前缀：ADM00001 / DOC00001 / PAT00001 / PHR00001
var RolePrefix = map[Role]string{
	RoleAdmin:      "ADM",
	RoleDoctor:     "DOC",
	RolePatient:    "PAT",
	RolePharmacist: "PHR",
}

func (r Role) Valid() bool {
	_, ok := RolePrefix[r]
	return ok
}

// ProvisionPolicy 开号策略表：谁可以开哪些角色的账号
// 写成表而不是散在路由里，便于单独测试和审计
var ProvisionPolicy = map[Role][]Role{
	RoleAdmin:  {RoleAdmin, RoleDoctor, RolePatient, RolePharmacist},
	RoleDoctor: {RoleDoctor, RolePatient, RolePharmacist},
}

// CanProvision actor 是否允许开 target 角色的账号
func CanProvision(actor, target Role) bool {
	for _, t := range ProvisionPolicy[actor] {
		if t == target {
			return true
		}
	}
	return false
}

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	UniqueID     string `gorm:"uniqueIndex;size:16;not null" json:"uniqueId"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         Role   `gorm:"size:16;not null" json:"role"`

	FirstName string `gorm:"size:64;not null" json:"firstName"`
	LastName  string `gorm:"size:64;not null" json:"lastName"`
	Phone     string `gorm:"size:32" json:"phone,omitempty"`

	IsActive     bool `gorm:"not null;default:true" json:"isActive"`
	IsFirstLogin bool `gorm:"not null;default:false" json:"isFirstLogin"`

	// 弱引用：记录开号人，仅用于审计，不做级联
	CreatedBy string `gorm:"size:36" json:"createdBy,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// RoleCounter 每角色一行的工号计数器，seq 只增不减
type RoleCounter struct {
	Role Role  `gorm:"primaryKey;size:16"`
	Seq  int64 `gorm:"not null;default:0"`
}

func (RoleCounter) TableName() string { return "role_counters" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(f UserFilter) ([]User, int64, error)
	Update(u *User) error
	SetActive(id string, active bool) error
	CountByRole(role Role) (int64, error)
	NextUniqueID(role Role) (string, error)
}

// UserFilter 管理端列表筛选
type UserFilter struct {
	Role     Role
	IsActive *bool
	Offset   int
	Limit    int
}
