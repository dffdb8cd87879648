package domain

import (
	"time"

	"github.com/google/uuid"
)

type RouteType string

const (
	RouteTypeTrain RouteType = "train"
	RouteTypeBus   RouteType = "bus"
)

// Route is read-only reference data from the transit feed. Route IDs are the
// feed's own string identifiers, not UUIDs.
type Route struct {
	ID        string    `json:"route_id" gorm:"primary_key"`
	ShortName string    `json:"route_short_name" gorm:"not null"`
	LongName  string    `json:"route_long_name" gorm:"not null"`
	Type      RouteType `json:"route_type" gorm:"not null"`
	Color     string    `json:"route_color"`
	TextColor string    `json:"route_text_color"`
}

// UserRoute records that a user rides a route. At most one row per
// (user, route) pair, enforced by the composite unique index.
type UserRoute struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_route"`
	RouteID   string    `json:"route_id" gorm:"not null;uniqueIndex:idx_user_route"`
	CreatedAt time.Time `json:"createdAt"`

	Route *Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	User  *User  `json:"-" gorm:"foreignKey:UserID"`
}

// Match is one entry in the ranked list of users sharing at least one route
// with the requesting user. Computed on read, never stored.
type Match struct {
	User             *User    `json:"user"`
	SharedRoutes     []*Route `json:"shared_routes"`
	SharedRouteCount int      `json:"shared_routes_count"`
}
