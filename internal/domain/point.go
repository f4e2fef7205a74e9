package domain

import "time"

// QueryMode selects which lifecycle slice a listing query sees.
type QueryMode int

const (
	ActiveOnly QueryMode = iota
	IncludeDeleted
	DeletedOnly
)

// CityPoint представляет городскую точку интереса.
type CityPoint struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Contact     string     `json:"contact" db:"contact"`
	Address     string     `json:"address" db:"address"`
	Description string     `json:"description" db:"description"`
	StartDate   *time.Time `json:"startDate,omitempty" db:"start_date"`
	State       int        `json:"state" db:"state"`
	Stars       int        `json:"stars" db:"stars"`
	Places      int        `json:"places" db:"places"`
	Images      []string   `json:"images" db:"images"`
	UserID      int64      `json:"idUser" db:"id_user"`
	TypeID      int64      `json:"typeId" db:"type_id"`
	SubtypeID   *int64     `json:"subtypeId,omitempty" db:"subtype_id"`

	Type       *TypeEntity `json:"type,omitempty"`
	Subtype    *Subtype    `json:"subtype,omitempty"`
	Facilities []Facility  `json:"facilities,omitempty"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// CityPointFilter describes a filtered, paginated, sorted listing
// window. Zero-valued filters are skipped.
type CityPointFilter struct {
	Limit      int
	Page       int
	TypeID     int64
	SubtypeID  int64
	UserID     int64
	SortField  string
	SortOrder  string
	Mode       QueryMode
	EventsOnly bool
}
