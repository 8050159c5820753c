package model

// Typed request bodies, validated once at the boundary before they reach the
// service layer.

type CreateTransactionRequest struct {
	NoTransaksi   string               `json:"no_transaksi" validate:"required"`
	TypePelanggan CustomerType         `json:"type_pelanggan" validate:"required,oneof=member nonmember"`
	CustomerID    *uint                `json:"customer_id"`
	NoHPCustomer  string               `json:"no_hp_customer"`
	Services      []ServiceLineRequest `json:"services" validate:"dive"`
	Items         []ItemLineRequest    `json:"items" validate:"dive"`
}

// ServiceLineRequest entries missing either field are dropped, not rejected.
// That filter is part of the caller contract inherited from the UI layer.
type ServiceLineRequest struct {
	NamaJasa string `json:"nama_jasa"`
	Harga    *int   `json:"harga"`
}

func (s ServiceLineRequest) Complete() bool {
	return s.NamaJasa != "" && s.Harga != nil
}

// ItemLineRequest carries an optional client-side TotalHarga. The server
// recomputes jumlah*harga-diskon and rejects a mismatch rather than trusting
// the caller's arithmetic.
type ItemLineRequest struct {
	ItemID     uint `json:"item_id" validate:"required"`
	Jumlah     int  `json:"jumlah" validate:"required,gt=0"`
	Diskon     int  `json:"diskon" validate:"min=0"`
	TotalHarga *int `json:"total_harga"`
}
