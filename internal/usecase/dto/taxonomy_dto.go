package dto

// CreateTypeRequest — роль уникальна среди типов.
type CreateTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Role        string  `json:"role" validate:"required,oneof=EVENTS HOSPITALITY GASTRONOMY CULTURE"`
}

type UpdateTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Role        *string `json:"role" validate:"omitempty,oneof=EVENTS HOSPITALITY GASTRONOMY CULTURE"`
}

type CreateSubtypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	TypeID      int64  `json:"typeId" validate:"required,gt=0"`
}

type UpdateSubtypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	TypeID      *int64  `json:"typeId" validate:"omitempty,gt=0"`
}

type ListSubtypesRequest struct {
	TypeID    int64  `query:"typeId"`
	SortField string `query:"sortField"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
	Limit     int    `query:"limit" validate:"omitempty,gt=0"`
}

type CreateFacilityRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	SubtypeIDs  []int64 `json:"subtypeIds" validate:"required,min=1,dive,gt=0"`
}

type UpdateFacilityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
