package model

import "time"

type Item struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	KodeBarang string    `gorm:"column:kode_barang;type:varchar(20);uniqueIndex;not null" json:"kode_barang" validate:"required"`
	NamaBarang string    `gorm:"column:nama_barang;type:varchar(255);not null" json:"nama_barang" validate:"required"`
	Merek      string    `gorm:"column:merek;type:varchar(100);not null" json:"merek" validate:"required"`
	Harga      int       `gorm:"not null;default:0" json:"harga" validate:"min=0"` // unit price, integer rupiah
	Qty        int       `gorm:"not null;default:0" json:"qty" validate:"min=0"`   // on-hand stock, never negative
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relasi
	TransactionItems []TransactionItem `gorm:"foreignKey:ItemID" json:"transaction_items,omitempty" validate:"-"`
}
