package models

import (
	"time"

	"gorm.io/datatypes"
)

// SaleLine is one sold item with name and unit price snapshotted at sale
// time; later food edits never change a historical sale.
type SaleLine struct {
	FoodID    string `json:"food_id"`
	FoodName  string `json:"food_name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type Sale struct {
	ID        string                         `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Items     datatypes.JSONType[[]SaleLine] `gorm:"column:items;type:jsonb" json:"items"`
	Total     int64                          `gorm:"column:total;type:bigint;not null" json:"total"`
	CreatedAt time.Time                      `gorm:"column:created_at;index" json:"created_at"`
}

func (Sale) TableName() string {
	return "sale"
}
