package models

import "time"

type ShippingAddress struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *uint     `json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	OrderID    *uint     `json:"order_id,omitempty"`
	Order      *Order    `gorm:"constraint:OnDelete:SET NULL" json:"order,omitempty"`
	Address    string    `gorm:"size:255;not null" json:"address"`
	CityID     uint      `gorm:"not null" json:"city_id"`
	City       *City     `json:"city,omitempty"`
	Region     string    `gorm:"size:100;not null" json:"region"`
	Phone      string    `gorm:"size:100;not null" json:"phone"`
	Comment    string    `gorm:"size:255" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type City struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}
