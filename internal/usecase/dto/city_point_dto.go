package dto

import (
	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/pkg/utils"
)

// CreateCityPointRequest carries the multipart form fields for a new
// point of interest. Image paths are filled in by the handler after
// the upload collaborator has stored the files.
type CreateCityPointRequest struct {
	Name        string  `json:"name" form:"name" validate:"required"`
	TypeID      int64   `json:"typeId" form:"typeId" validate:"required,gt=0"`
	SubtypeID   *int64  `json:"subtypeId" form:"subtypeId" validate:"omitempty,gt=0"`
	UserID      int64   `json:"idUser" form:"idUser" validate:"required,gt=0"`
	Contact     string  `json:"contact" form:"contact"`
	Address     string  `json:"address" form:"address"`
	Description string  `json:"description" form:"description"`
	StartDate   string  `json:"startDate" form:"startDate"`
	State       int     `json:"state" form:"state"`
	Stars       int     `json:"stars" form:"stars" validate:"omitempty,min=0,max=5"`
	Places      int     `json:"places" form:"places" validate:"omitempty,min=0"`
	Facilities  []int64 `json:"facilities" form:"facilities"`

	Images []string `json:"images" form:"-"`
}

type UpdateCityPointRequest struct {
	Name        *string `json:"name" form:"name"`
	SubtypeID   *int64  `json:"subtypeId" form:"subtypeId" validate:"omitempty,gt=0"`
	Contact     *string `json:"contact" form:"contact"`
	Address     *string `json:"address" form:"address"`
	Description *string `json:"description" form:"description"`
	StartDate   *string `json:"startDate" form:"startDate"`
	State       *int    `json:"state" form:"state"`
	Stars       *int    `json:"stars" form:"stars" validate:"omitempty,min=0,max=5"`
	Places      *int    `json:"places" form:"places" validate:"omitempty,min=0"`
	Facilities  []int64 `json:"facilities" form:"facilities"`

	// ImagesToRemove lists public image paths to detach; backing files
	// are unlinked best-effort after the record update commits.
	ImagesToRemove []string `json:"imagesToRemove" form:"imagesToRemove"`

	NewImages []string `json:"-" form:"-"`
}

// ListCityPointsRequest mirrors the findAll query parameters.
type ListCityPointsRequest struct {
	Limit     int    `query:"limit" validate:"omitempty,gt=0"`
	Page      int    `query:"page" validate:"omitempty,gt=0"`
	TypeID    int64  `query:"idType"`
	SubtypeID int64  `query:"idSubtype"`
	UserID    int64  `query:"idUser"`
	SortField string `query:"sortField"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
}

type CityPointListResponse struct {
	Results []*domain.CityPoint `json:"results"`
	Total   int                 `json:"total"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
	Links   *utils.PageLinks    `json:"links"`
}
