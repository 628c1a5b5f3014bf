package dto

import "reviewhub/internal/api/models"

// CreateUserDTO used by admins for POST /users
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,min=3,max=150"`
	Email     string  `json:"email" binding:"required,email"`
	Role      string  `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// UpdateUserDTO used by admins for PATCH /users/:username (partial)
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=150"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// UpdateSelfDTO used for PATCH /users/me. Deliberately has no role or
// email field: whatever the client sends there is dropped at bind time,
// which closes the self-service privilege escalation hole.
type UpdateSelfDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=150"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// UserResponse DTO for responses
type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// Converters

func (d CreateUserDTO) ToModel() models.User {
	role := d.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		Username:  d.Username,
		Email:     d.Email,
		Role:      role,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
	}
}

func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	if d.FirstName != nil {
		u.FirstName = d.FirstName
	}
	if d.LastName != nil {
		u.LastName = d.LastName
	}
	if d.Bio != nil {
		u.Bio = d.Bio
	}
}

func (d UpdateSelfDTO) ApplyTo(u *models.User) {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.FirstName != nil {
		u.FirstName = d.FirstName
	}
	if d.LastName != nil {
		u.LastName = d.LastName
	}
	if d.Bio != nil {
		u.Bio = d.Bio
	}
}

func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}
