package model

import "time"

type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	KodeCustomer   string    `gorm:"column:kode_customer;type:varchar(20);uniqueIndex;not null" json:"kode_customer" validate:"required"`
	NamaCustomer   string    `gorm:"column:nama_customer;type:varchar(255);not null" json:"nama_customer" validate:"required"`
	NoHP           string    `gorm:"column:no_hp;type:varchar(20);not null" json:"no_hp" validate:"required"`
	AlamatCustomer string    `gorm:"column:alamat_customer;not null" json:"alamat_customer" validate:"required"`
	TglDaftar      time.Time `gorm:"column:tgl_daftar;autoCreateTime" json:"tgl_daftar"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relasi
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"transactions,omitempty" validate:"-"`
}
