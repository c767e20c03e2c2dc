package dto

import (
	"mariachi/internal/domains/user/model"
	"mariachi/internal/domains/user/repository"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gModel "mariachi/shared/model"
	"mariachi/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=admin employee client"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,max=30"`
}

func (r *CreateUserRequest) ToModel(user string, hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    repository.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     r.Role,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateUserRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Role     string `db:"role"      json:"role"      validate:"omitempty,oneof=admin employee client"`
	Active   *bool  `json:"active"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Phone = user.Phone
	r.Role = user.Role
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)

	if user.LastLogin != nil {
		r.LastLogin = timezone.Format(*user.LastLogin, constant.DateFormat)
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
