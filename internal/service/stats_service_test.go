package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careportal/internal/domain"
)

func TestStats_NoCache(t *testing.T) {
	_, userSvc, users := setupServices(t)
	admin := registerAdmin(t, userSvc)

	doc, _, err := userSvc.Provision(admin, domain.RoleDoctor, ProfileInput{
		Email: "d@x.com", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)
	_, _, err = userSvc.Provision(admin, domain.RoleDoctor, ProfileInput{
		Email: "d2@x.com", FirstName: "C", LastName: "D",
	})
	require.NoError(t, err)
	_, err = userSvc.SetActive(doc.ID, false)
	require.NoError(t, err)

	st, err := NewStatsService(users, nil).Get(context.Background())
	require.NoError(t, err)
	require.Len(t, st.Roles, 4)

	byRole := map[domain.Role]RoleStat{}
	for _, rs := range st.Roles {
		byRole[rs.Role] = rs
	}
	assert.EqualValues(t, 1, byRole[domain.RoleAdmin].Total)
	assert.EqualValues(t, 1, byRole[domain.RoleAdmin].Active)
	assert.EqualValues(t, 2, byRole[domain.RoleDoctor].Total)
	assert.EqualValues(t, 1, byRole[domain.RoleDoctor].Active, "deactivated doctor excluded")
	assert.EqualValues(t, 0, byRole[domain.RolePatient].Total)
	assert.False(t, st.GeneratedAt.IsZero())
}
