package model

import "time"

type CustomerType string

const (
	CustomerMember    CustomerType = "member"
	CustomerNonMember CustomerType = "nonmember"
)

// Transaction owns its service and item lines. Exactly one of CustomerID /
// NoHPCustomer is populated, decided by TypePelanggan.
type Transaction struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	NoTransaksi   string       `gorm:"column:no_transaksi;type:varchar(20);uniqueIndex;not null" json:"no_transaksi"`
	TglTransaksi  time.Time    `gorm:"column:tgl_transaksi;autoCreateTime" json:"tgl_transaksi"`
	TypePelanggan CustomerType `gorm:"column:type_pelanggan;type:varchar(10);not null" json:"type_pelanggan"`
	CustomerID    *uint        `gorm:"column:customer_id" json:"customer_id"`
	NoHPCustomer  *string      `gorm:"column:no_hp_customer;type:varchar(20)" json:"no_hp_customer"`

	// Relasi
	Customer            *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TransactionServices []TransactionService `gorm:"foreignKey:TransaksiID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"transaction_services"`
	TransactionItems    []TransactionItem    `gorm:"foreignKey:TransaksiID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"transaction_items"`
}

// TransactionService is a labour line. No inventory effect.
type TransactionService struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TransaksiID uint   `gorm:"column:transaksi_id;not null" json:"transaksi_id"`
	NamaJasa    string `gorm:"column:nama_jasa;type:varchar(255);not null" json:"nama_jasa"`
	Harga       int    `gorm:"not null" json:"harga"`
}

// TransactionItem is a stock line. TotalHarga is frozen at creation time;
// later changes to the item's unit price do not touch past lines.
type TransactionItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	TransaksiID uint `gorm:"column:transaksi_id;not null" json:"transaksi_id"`
	ItemID      uint `gorm:"column:item_id;not null" json:"item_id"`
	Jumlah      int  `gorm:"not null;check:jumlah > 0" json:"jumlah"`
	TotalHarga  int  `gorm:"column:total_harga;not null" json:"total_harga"`

	Item Item `gorm:"foreignKey:ItemID" json:"item"`
}

// TransactionSummary holds the derived totals, computed on read and never
// stored.
type TransactionSummary struct {
	TotalServices int `json:"total_services"`
	TotalItems    int `json:"total_items"`
	GrandTotal    int `json:"grand_total"`
}

type TransactionView struct {
	Transaction
	Summary TransactionSummary `json:"summary"`
}

// Summarize recomputes the derived totals from the current child rows.
func (t *Transaction) Summarize() TransactionSummary {
	var s TransactionSummary
	for _, svc := range t.TransactionServices {
		s.TotalServices += svc.Harga
	}
	for _, line := range t.TransactionItems {
		s.TotalItems += line.TotalHarga
	}
	s.GrandTotal = s.TotalServices + s.TotalItems
	return s
}
