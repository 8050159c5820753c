package service

import (
	"testing"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionDecrementsStockAndComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Oli Mesin", 10, 5000)

	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "T1",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 4, TotalHarga: intPtr(20000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, trx.TransactionItems, 1)
	assert.Equal(t, 20000, trx.TransactionItems[0].TotalHarga)
	assert.Equal(t, 6, env.itemQty(t, item.ID))

	view, err := env.transactions.GetByID(trx.ID)
	require.NoError(t, err)
	assert.Equal(t, 20000, view.Summary.GrandTotal)
	assert.Equal(t, 20000, view.Summary.TotalItems)
	assert.Equal(t, 0, view.Summary.TotalServices)

	deleted, err := env.transactions.Delete(trx.ID)
	require.NoError(t, err)
	assert.Equal(t, trx.ID, deleted.ID)
	assert.Equal(t, 10, env.itemQty(t, item.ID))
}

func TestCreateTransactionInsufficientStockLeavesQtyUnchanged(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Busi NGK", 10, 25000)

	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 11},
		},
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Busi NGK")
	assert.Equal(t, 10, env.itemQty(t, item.ID))
}

func TestCreateTransactionPartialFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	itemA := env.seedItem(t, "B001", "Filter Udara", 10, 45000)
	itemB := env.seedItem(t, "B002", "Aki GS Astra", 1, 650000)

	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Services: []model.ServiceLineRequest{
			{NamaJasa: "Tune Up Engine", Harga: intPtr(150000)},
		},
		Items: []model.ItemLineRequest{
			{ItemID: itemA.ID, Jumlah: 3},
			{ItemID: itemB.ID, Jumlah: 5},
		},
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)

	// The unit rolled back: item A keeps its stock and no rows survive.
	assert.Equal(t, 10, env.itemQty(t, itemA.ID))
	assert.Equal(t, 1, env.itemQty(t, itemB.ID))

	var trxCount, svcCount, lineCount int64
	env.db.Model(&model.Transaction{}).Count(&trxCount)
	env.db.Model(&model.TransactionService{}).Count(&svcCount)
	env.db.Model(&model.TransactionItem{}).Count(&lineCount)
	assert.Zero(t, trxCount)
	assert.Zero(t, svcCount)
	assert.Zero(t, lineCount)
}

func TestCreateTransactionCustomerTypeConsistency(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerMember,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX002",
		TypePelanggan: model.CustomerNonMember,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransactionMemberRequiresExistingCustomer(t *testing.T) {
	env := newTestEnv(t)

	missing := uint(999)
	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerMember,
		CustomerID:    &missing,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	customer := env.seedCustomer(t, "C001", "John Doe")
	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerMember,
		CustomerID:    &customer.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, trx.Customer)
	assert.Equal(t, "John Doe", trx.Customer.NamaCustomer)
	assert.Nil(t, trx.NoHPCustomer)
}

func TestCreateTransactionDuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Busi NGK", 10, 25000)

	first, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 2},
		},
	})
	require.NoError(t, err)

	_, err = env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0822",
	})
	require.ErrorIs(t, err, apperr.ErrDuplicateCode)

	// The first transaction is intact and its stock effect stands.
	view, err := env.transactions.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRX001", view.NoTransaksi)
	assert.Equal(t, 8, env.itemQty(t, item.ID))
}

func TestCreateTransactionSameItemTwiceValidatesAgainstRunningQty(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Ban Michelin", 10, 750000)

	// 6 + 6 exceeds stock even though each line fits on its own.
	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 6},
			{ItemID: item.ID, Jumlah: 6},
		},
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 10, env.itemQty(t, item.ID))

	// 6 + 4 fits exactly.
	_, err = env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX002",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 6},
			{ItemID: item.ID, Jumlah: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, env.itemQty(t, item.ID))
}

func TestCreateTransactionRecomputesLineTotals(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Oli Mesin", 10, 85000)

	// A client total that disagrees with jumlah*harga-diskon is rejected.
	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 2, TotalHarga: intPtr(100)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 10, env.itemQty(t, item.ID))

	// Omitted total is filled in server-side, discount applied.
	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 2, Diskon: 10000},
		},
	})
	require.NoError(t, err)
	require.Len(t, trx.TransactionItems, 1)
	assert.Equal(t, 160000, trx.TransactionItems[0].TotalHarga)
}

func TestCreateTransactionFrozenLineTotalSurvivesPriceChange(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedItem(t, "B001", "Busi NGK", 10, 25000)

	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: item.ID, Jumlah: 2},
		},
	})
	require.NoError(t, err)

	item.Harga = 99000
	_, err = env.items.Update(item.ID, item)
	require.NoError(t, err)

	view, err := env.transactions.GetByID(trx.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000, view.Summary.TotalItems)
}

func TestCreateTransactionDropsIncompleteServiceEntries(t *testing.T) {
	env := newTestEnv(t)

	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Services: []model.ServiceLineRequest{
			{NamaJasa: "Ganti Oli Mesin", Harga: intPtr(50000)},
			{NamaJasa: "Tanpa Harga"},
			{Harga: intPtr(75000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, trx.TransactionServices, 1)
	assert.Equal(t, "Ganti Oli Mesin", trx.TransactionServices[0].NamaJasa)

	view, err := env.transactions.GetByID(trx.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000, view.Summary.TotalServices)
	assert.Equal(t, 50000, view.Summary.GrandTotal)
}

func TestCreateTransactionUnknownItemRollsBack(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: 42, Jumlah: 1},
		},
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var trxCount int64
	env.db.Model(&model.Transaction{}).Count(&trxCount)
	assert.Zero(t, trxCount)
}

func TestDeleteTransactionRestoresOnlyItsOwnItems(t *testing.T) {
	env := newTestEnv(t)
	itemA := env.seedItem(t, "B001", "Filter Udara", 30, 45000)
	itemB := env.seedItem(t, "B002", "Busi NGK", 100, 25000)

	trx, err := env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
		Items: []model.ItemLineRequest{
			{ItemID: itemA.ID, Jumlah: 5},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 25, env.itemQty(t, itemA.ID))

	_, err = env.transactions.Delete(trx.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, env.itemQty(t, itemA.ID))
	assert.Equal(t, 100, env.itemQty(t, itemB.ID))

	// Children went with the parent.
	var svcCount, lineCount int64
	env.db.Model(&model.TransactionService{}).Count(&svcCount)
	env.db.Model(&model.TransactionItem{}).Count(&lineCount)
	assert.Zero(t, svcCount)
	assert.Zero(t, lineCount)
}

func TestDeleteTransactionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.Delete(404)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetTransactionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.GetByID(404)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	for _, no := range []string{"TRX001", "TRX002", "TRX003"} {
		_, err := env.transactions.Create(&model.CreateTransactionRequest{
			NoTransaksi:   no,
			TypePelanggan: model.CustomerNonMember,
			NoHPCustomer:  "0811",
		})
		require.NoError(t, err)
	}

	all, err := env.transactions.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "TRX003", all[0].NoTransaksi)
	assert.Equal(t, "TRX001", all[2].NoTransaksi)
}

func TestNextTransactionCode(t *testing.T) {
	env := newTestEnv(t)

	code, err := env.transactions.NextCode()
	require.NoError(t, err)
	assert.Equal(t, "TRX001", code)

	_, err = env.transactions.Create(&model.CreateTransactionRequest{
		NoTransaksi:   "TRX001",
		TypePelanggan: model.CustomerNonMember,
		NoHPCustomer:  "0811",
	})
	require.NoError(t, err)

	code, err = env.transactions.NextCode()
	require.NoError(t, err)
	assert.Equal(t, "TRX002", code)
}
