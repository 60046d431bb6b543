package models

import "time"

// Snapshot is one named durable slot holding a serialized LedgerSnapshot.
type Snapshot struct {
	Name      string    `gorm:"primaryKey;type:varchar(100)"`
	Payload   string    `gorm:"type:longtext;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// LedgerSnapshot is the persisted part of the ledger state. The cart is
// transient and never stored.
type LedgerSnapshot struct {
	CurrentUser     *User       `json:"current_user"`
	IsAuthenticated bool        `json:"is_authenticated"`
	Products        []Product   `json:"products"`
	Stock           []StockItem `json:"stock"`
	Orders          []Order     `json:"orders"`
	CurrentView     View        `json:"current_view"`
}
