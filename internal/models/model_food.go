package models

import "time"

type Food struct {
	ID        string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Price     int64     `gorm:"column:price;type:bigint;not null" json:"price"`
	Stock     int64     `gorm:"column:stock;type:bigint;not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Food) TableName() string {
	return "food"
}
