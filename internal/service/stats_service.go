package service

import (
	"context"
	"time"

	"careportal/internal/core/cache"
	"careportal/internal/domain"
)

const (
	statsCacheKey = "careportal:admin:stats"
	statsCacheTTL = 30 * time.Second
)

// RoleStat 管理端看板用的每角色数量
type RoleStat struct {
	Role   domain.Role `json:"role"`
	Total  int64       `json:"total"`
	Active int64       `json:"active"`
}

type Stats struct {
	Roles       []RoleStat `json:"roles"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

type StatsService struct {
	users domain.UserRepository
	cache *cache.Cache
}

func NewStatsService(users domain.UserRepository, c *cache.Cache) *StatsService {
	return &StatsService{users: users, cache: c}
}

// Get 看板数据走 redis 缓存，singleflight 合并并发回源。
// cache 为 nil 时直接回源（测试或未配 redis 的部署）
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	return cache.GetOrLoadJSON[Stats](s.cache, ctx, statsCacheKey, statsCacheTTL, s.load)
}

func (s *StatsService) load(context.Context) (*Stats, error) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient, domain.RolePharmacist}
	out := &Stats{GeneratedAt: time.Now()}
	activeOnly := true
	for _, role := range roles {
		total, err := s.users.CountByRole(role)
		if err != nil {
			return nil, err
		}
		// List 的第二个返回值就是过滤后的总数
		_, active, err := s.users.List(domain.UserFilter{Role: role, IsActive: &activeOnly, Limit: 1})
		if err != nil {
			return nil, err
		}
		out.Roles = append(out.Roles, RoleStat{Role: role, Total: total, Active: active})
	}
	return out, nil
}
