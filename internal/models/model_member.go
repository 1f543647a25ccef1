package models

import "time"

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "Active"
	MembershipStatusExpired MembershipStatus = "Expired"
)

// Membership is the member's current window. PlanName and Price are copies
// taken when the plan is applied; editing or deleting the plan later must not
// rewrite what the member was sold.
type Membership struct {
	PlanID    string    `gorm:"column:plan_id;type:uuid;not null" json:"plan_id"`
	PlanName  string    `gorm:"column:plan_name;type:varchar(128);not null" json:"plan_name"`
	Price     int64     `gorm:"column:price;type:bigint;not null" json:"price"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null;index" json:"end_date"`
}

// Member holds only the current membership; past windows survive solely as
// transaction ledger snapshots.
type Member struct {
	ID    string  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name  string  `gorm:"column:name;type:varchar(128);not null;index" json:"name"`
	Email *string `gorm:"column:email;type:varchar(128);uniqueIndex" json:"email"`
	Phone string  `gorm:"column:phone;type:varchar(32);not null;uniqueIndex" json:"phone"`

	JoinDate   time.Time  `gorm:"column:join_date;not null;index" json:"join_date"`
	Membership Membership `gorm:"embedded;embeddedPrefix:membership_" json:"membership"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "member"
}

// Status is derived, never stored: Active iff now < EndDate. At exactly
// EndDate the membership is already Expired.
func (m *Member) Status(now time.Time) MembershipStatus {
	if now.Before(m.Membership.EndDate) {
		return MembershipStatusActive
	}
	return MembershipStatusExpired
}
