package repo

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"careportal/internal/domain"
	"careportal/pkg/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.RoleCounter{}, &domain.Schedule{}))
	require.NoError(t, EnsureRoleCounters(db))
	return db
}

func newTestUser(role domain.Role, email string) *domain.User {
	return &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}
}

func TestUserRepo_CreateAndFind(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	u := newTestUser(domain.RolePatient, "p@example.com")
	u.UniqueID = "PAT00001"
	require.NoError(t, r.Create(u))

	got, err := r.FindByEmail("p@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = r.FindByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PAT00001", got.UniqueID)

	// 查无此人返回 nil, nil
	got, err = r.FindByEmail("missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = r.FindByID("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	u1 := newTestUser(domain.RolePatient, "dup@example.com")
	u1.UniqueID = "PAT00001"
	require.NoError(t, r.Create(u1))

	u2 := newTestUser(domain.RoleDoctor, "dup@example.com")
	u2.UniqueID = "DOC00001"
	err := r.Create(u2)
	assert.Error(t, err, "email must be globally unique across roles")
}

func TestUserRepo_DuplicateUniqueID(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	u1 := newTestUser(domain.RoleDoctor, "a@example.com")
	u1.UniqueID = "DOC00001"
	require.NoError(t, r.Create(u1))

	u2 := newTestUser(domain.RoleDoctor, "b@example.com")
	u2.UniqueID = "DOC00001"
	assert.Error(t, r.Create(u2), "unique index on unique_id is the backstop")
}

func TestUserRepo_NextUniqueID_Sequential(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	for i := 1; i <= 5; i++ {
		id, err := r.NextUniqueID(domain.RoleDoctor)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("DOC%05d", i), id)
	}
}

func TestUserRepo_NextUniqueID_PerRole(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	d1, err := r.NextUniqueID(domain.RoleDoctor)
	require.NoError(t, err)
	p1, err := r.NextUniqueID(domain.RolePatient)
	require.NoError(t, err)
	d2, err := r.NextUniqueID(domain.RoleDoctor)
	require.NoError(t, err)

	// 每个角色独立计数
	assert.Equal(t, "DOC00001", d1)
	assert.Equal(t, "PAT00001", p1)
	assert.Equal(t, "DOC00002", d2)
}

// 并发分配同一角色的工号不得重号。老实现用"数现有行 + 1"，
// 两个并发请求能读到同一个数；计数器行的原子自增不会
func TestUserRepo_NextUniqueID_Concurrent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=10000"
	r := NewUserRepo(openTestDB(t, dsn))

	const workers = 8
	const perWorker = 5

	var mu sync.Mutex
	ids := make(map[string]struct{})
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := r.NextUniqueID(domain.RolePharmacist)
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, ids, workers*perWorker, "concurrent allocation produced duplicate ids")
}

func TestUserRepo_List(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	for i := 0; i < 3; i++ {
		u := newTestUser(domain.RoleDoctor, fmt.Sprintf("d%d@example.com", i))
		u.UniqueID = fmt.Sprintf("DOC%05d", i+1)
		require.NoError(t, r.Create(u))
	}
	inactive := newTestUser(domain.RolePatient, "p0@example.com")
	inactive.UniqueID = "PAT00001"
	inactive.IsActive = false
	require.NoError(t, r.Create(inactive))

	items, total, err := r.List(domain.UserFilter{Role: domain.RoleDoctor})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	active := false
	items, total, err = r.List(domain.UserFilter{IsActive: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "p0@example.com", items[0].Email)

	// 无过滤：全量
	_, total, err = r.List(domain.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestUserRepo_SetActive(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	u := newTestUser(domain.RolePharmacist, "ph@example.com")
	u.UniqueID = "PHR00001"
	require.NoError(t, r.Create(u))

	require.NoError(t, r.SetActive(u.ID, false))
	got, err := r.FindByID(u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, r.SetActive(u.ID, true))
	got, err = r.FindByID(u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	assert.ErrorIs(t, r.SetActive("missing", false), gorm.ErrRecordNotFound)
}

func TestUserRepo_CountByRole(t *testing.T) {
	r := NewUserRepo(setupTestDB(t))

	n, err := r.CountByRole(domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	a := newTestUser(domain.RoleAdmin, "adm@example.com")
	a.UniqueID = "ADM00001"
	require.NoError(t, r.Create(a))

	n, err = r.CountByRole(domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
