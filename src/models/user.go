package models

import (
	"cems/src/types"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	StudentID    *string `gorm:"uniqueIndex" json:"student_id,omitempty"`
	PasswordHash string  `gorm:"not null" json:"-"`
	FullName     string  `json:"full_name,omitempty"`
	Role         string  `gorm:"default:'student'" json:"role,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Department   string  `json:"department,omitempty"`
	Year         string  `json:"year,omitempty"`
	Active       bool    `gorm:"default:true" json:"active"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
