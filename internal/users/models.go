package users

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// PassengerCategory selects the fare discount a passenger is entitled to.
// GENERAL maps to no discount.
type PassengerCategory string

const (
	CategoryGeneral PassengerCategory = "GENERAL"
	CategoryStudent PassengerCategory = "STUDENT"
	CategorySenior  PassengerCategory = "SENIOR"
	CategoryChild   PassengerCategory = "CHILD"
)

type User struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	FirstName string            `json:"first_name" gorm:"not null"`
	LastName  string            `json:"last_name" gorm:"not null"`
	Document  string            `json:"document" gorm:"uniqueIndex;not null"` // national ID
	Role      Role              `json:"role" gorm:"not null;default:'USER'"`
	Category  PassengerCategory `json:"category" gorm:"not null;default:'GENERAL'"`
	Email     string            `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

func IsValidCategory(category string) bool {
	switch PassengerCategory(category) {
	case CategoryGeneral, CategoryStudent, CategorySenior, CategoryChild:
		return true
	default:
		return false
	}
}
