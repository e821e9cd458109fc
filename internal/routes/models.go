package routes

import (
	"time"
)

// Route is an ordered sequence of stops. Stop order numbers are route-local
// sequence positions, strictly increasing along the route.
type Route struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Origin    string    `json:"origin" gorm:"not null"`
	Terminus  string    `json:"terminus" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	Stops     []Stop    `json:"stops,omitempty" gorm:"foreignKey:RouteID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Stop struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RouteID   uint      `json:"route_id" gorm:"not null;index;uniqueIndex:unique_stop_order,priority:1"`
	Name      string    `json:"name" gorm:"not null"`
	Order     int       `json:"order" gorm:"column:stop_order;not null;uniqueIndex:unique_stop_order,priority:2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Stop) BelongsTo(routeID uint) bool {
	return s.RouteID == routeID
}
