package models

import "time"

// Transaction is an append-only billing event: one row per registration or
// renewal. MemberName and PlanName are snapshots taken at write time so the
// ledger stays stable after member or plan edits.
type Transaction struct {
	ID              string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	MemberID        string    `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	MemberName      string    `gorm:"column:member_name;type:varchar(128);not null" json:"member_name"`
	PlanName        string    `gorm:"column:plan_name;type:varchar(128);not null" json:"plan_name"`
	Amount          int64     `gorm:"column:amount;type:bigint;not null" json:"amount"`
	TransactionDate time.Time `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transaction"
}
