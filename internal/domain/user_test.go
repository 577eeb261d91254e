package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanProvision(t *testing.T) {
	tests := []struct {
		actor  Role
		target Role
		want   bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleDoctor, true},
		{RoleAdmin, RolePatient, true},
		{RoleAdmin, RolePharmacist, true},
		{RoleDoctor, RolePatient, true},
		{RoleDoctor, RoleDoctor, true},
		{RoleDoctor, RolePharmacist, true},
		{RoleDoctor, RoleAdmin, false},
		{RolePatient, RolePatient, false},
		{RolePharmacist, RolePatient, false},
		{Role("nurse"), RolePatient, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanProvision(tt.actor, tt.target),
			"%s -> %s", tt.actor, tt.target)
	}
}

func TestRolePrefix(t *testing.T) {
	assert.Equal(t, "ADM", RolePrefix[RoleAdmin])
	assert.Equal(t, "DOC", RolePrefix[RoleDoctor])
	assert.Equal(t, "PAT", RolePrefix[RolePatient])
	assert.Equal(t, "PHR", RolePrefix[RolePharmacist])

	assert.True(t, RoleDoctor.Valid())
	assert.False(t, Role("nurse").Valid())
}
