package dto

import (
	"strings"

	"catalog_service/internal/domain"
)

// UserDTO never carries the password.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" binding:"notblank,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"required,email"`
}

type UserInsertDTO struct {
	UserDTO
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func NewUserDTO(user domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// CopyTo overwrites the profile fields of user. The email is normalized to lower case.
func (d UserDTO) CopyTo(user *domain.User) {
	user.FirstName = strings.TrimSpace(d.FirstName)
	user.LastName = strings.TrimSpace(d.LastName)
	user.Email = NormalizeEmail(d.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
