package buses

import (
	"time"
)

// Bus is a physical vehicle with a fixed seat capacity. Seat numbers on
// tickets and holds range over 1..Capacity.
type Bus struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Plate     string    `json:"plate" gorm:"uniqueIndex;not null"`
	Model     string    `json:"model"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
