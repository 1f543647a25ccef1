package models

import "time"

// Checkin is an append-only attendance record. MemberName is snapshotted so
// the log renders without joins.
type Checkin struct {
	ID          string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	MemberID    string    `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	MemberName  string    `gorm:"column:member_name;type:varchar(128);not null" json:"member_name"`
	CheckInTime time.Time `gorm:"column:check_in_time;not null;index" json:"check_in_time"`
}

func (Checkin) TableName() string {
	return "checkin"
}
