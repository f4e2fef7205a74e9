package dto

type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Lastname string   `json:"lastname" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required,min=8"`
	Email    string   `json:"email" validate:"required,email"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=ADMIN USER"`
	TypeID   *int64   `json:"typeId" validate:"omitempty,gt=0"`
}

type UpdateUserRequest struct {
	Name     *string  `json:"name"`
	Lastname *string  `json:"lastname"`
	Username *string  `json:"username"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=ADMIN USER"`
	TypeID   *int64   `json:"typeId" validate:"omitempty,gt=0"`
}
