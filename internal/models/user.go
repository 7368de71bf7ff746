package models

import "time"

type AccountType int

const (
	AccountTypeNormal AccountType = iota
	AccountTypeDemo
)

// Valid reports whether the value is a defined account type.
func (a AccountType) Valid() bool {
	return a >= AccountTypeNormal && a <= AccountTypeDemo
}

type User struct {
	ID             string      `gorm:"type:varchar(36);primarykey" json:"id"`
	Username       string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	HashedPassword string      `gorm:"type:varchar(255);not null" json:"-"`
	RefreshToken   string      `gorm:"type:varchar(512)" json:"-"`
	AccountType    AccountType `gorm:"not null;default:0" json:"account_type"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
}
