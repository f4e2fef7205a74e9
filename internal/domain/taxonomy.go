package domain

// TypeRole классифицирует тип по его назначению. Уникален среди типов;
// бизнес-правила ветвятся по роли, а не по числовому id.
type TypeRole string

const (
	RoleEvents      TypeRole = "EVENTS"
	RoleHospitality TypeRole = "HOSPITALITY"
	RoleGastronomy  TypeRole = "GASTRONOMY"
	RoleCulture     TypeRole = "CULTURE"
)

// TypeEntity represents a top-level taxonomy category.
type TypeEntity struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description *string  `json:"description,omitempty" db:"description"`
	Role        TypeRole `json:"role" db:"role"`
}

// Subtype belongs to exactly one TypeEntity and may carry a set of
// facilities through the subtype_facilities join table.
type Subtype struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	TypeID      int64       `json:"typeId" db:"type_id"`
	Type        *TypeEntity `json:"type,omitempty"`
	Facilities  []Facility  `json:"facilities,omitempty"`
}

type Facility struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Subtypes    []Subtype `json:"subtypes,omitempty"`
}
