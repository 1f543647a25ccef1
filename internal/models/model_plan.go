package models

import "time"

// Plan is a billing template members subscribe to. DurationInMonths == 0 is a
// single-visit pass whose window is the remainder of the current day.
type Plan struct {
	ID   string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name string `gorm:"column:name;type:varchar(128);not null;uniqueIndex" json:"name"`
	// DurationInMonths is a whole number of calendar months; 0 = single visit.
	DurationInMonths int       `gorm:"column:duration_in_months;not null" json:"duration_in_months"`
	Price            int64     `gorm:"column:price;type:bigint;not null" json:"price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "membership_plan"
}
