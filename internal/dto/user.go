package dto

import (
	"time"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// CreateUserRequest defines the signup payload.
type CreateUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,legacyemail"`
	Password string `json:"password" form:"password" binding:"required,min=3"`
	Name     string `json:"name" form:"name" binding:"omitempty,max=50"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Gender   string `json:"gender" form:"gender" binding:"omitempty,max=10"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
// Role flags are only honoured for superusers.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Gender   *string `json:"gender" binding:"omitempty,max=10"`
	Password *string `json:"password" binding:"omitempty,min=3"`
	IsStaff  *bool   `json:"isStaff"`
	IsActive *bool   `json:"isActive"`
}

// ListParams defines pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// UserResponse is the public view of a user; it never carries the password hash.
type UserResponse struct {
	UserID      string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain.User to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Gender:      u.Gender,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	resp := ListUsersResponse{Users: make([]UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = ToUserResponse(&users[i])
	}
	return resp
}
