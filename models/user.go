package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Profile  *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Customer *Customer `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
}

// Profile carries the extended account fields edited separately from the
// login identity.
type Profile struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	PhoneNumber string `gorm:"size:30" json:"phone_number"`
	City        string `gorm:"size:30" json:"city"`
}

// Customer is the billing identity orders hang off. It survives user
// deletion with a detached UserID.
type Customer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint  `gorm:"uniqueIndex" json:"user_id,omitempty"`
	FirstName string `gorm:"size:255;default:''" json:"first_name"`
	LastName  string `gorm:"size:255;default:''" json:"last_name"`
	Email     string `gorm:"size:255" json:"email"`
}
