package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
)

func TestProjectAuthor_Student(t *testing.T) {
	resp := ProjectAuthor(&models.User{
		ID:        1,
		Email:     "alice@uni.edu",
		FirstName: "Alice",
		LastName:  "Smith",
		Nickname:  "al1ce",
		Role:      models.RoleStudent,
	})

	assert.Equal(t, "al1ce", resp.DisplayName)
	assert.Equal(t, "STUDENT", resp.Role)
	assert.Nil(t, resp.Email)
}

func TestProjectAuthor_Professor(t *testing.T) {
	resp := ProjectAuthor(&models.User{
		ID:        2,
		Email:     "e.meier@uni.edu",
		FirstName: "Eva",
		LastName:  "Meier",
		Nickname:  "evam",
		Role:      models.RoleProfessor,
	})

	assert.Equal(t, "Eva Meier", resp.DisplayName)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "e.meier@uni.edu", *resp.Email)
}

func TestProjectAuthor_Admin(t *testing.T) {
	resp := ProjectAuthor(&models.User{
		ID:        3,
		Email:     "admin@uniforum.edu",
		FirstName: "System",
		LastName:  "Administrator",
		Nickname:  "admin",
		Role:      models.RoleAdmin,
	})

	assert.Equal(t, "System Administrator", resp.DisplayName)
	assert.Nil(t, resp.Email)
}
