package services

import (
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
)

// ProjectAuthor shapes a user for public display according to the per-role
// privacy policy. Students are shown by nickname only, admins by full name,
// professors by full name with their contact email exposed.
func ProjectAuthor(user *models.User) dto.AuthorResponse {
	resp := dto.AuthorResponse{
		ID:   user.ID,
		Role: string(user.Role),
	}

	switch user.Role {
	case models.RoleStudent:
		resp.DisplayName = user.Nickname
	case models.RoleProfessor:
		resp.DisplayName = user.FullName()
		email := user.Email
		resp.Email = &email
	default:
		resp.DisplayName = user.FullName()
	}

	return resp
}
