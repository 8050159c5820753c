package service

import (
	"testing"

	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory store per test. MaxOpenConns(1)
// keeps every connection on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Item{},
		&model.Transaction{},
		&model.TransactionService{},
		&model.TransactionItem{},
	))
	return db
}

type testEnv struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	customers    CustomerService
	items        ItemService
	transactions TransactionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	customerRepo := repository.NewCustomerRepo(db)
	itemRepo := repository.NewItemRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)

	return &testEnv{
		db:           db,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		customers:    NewCustomerService(customerRepo),
		items:        NewItemService(itemRepo, nil),
		transactions: NewTransactionService(transactionRepo, customerRepo, itemRepo, db, nil),
	}
}

func (env *testEnv) seedItem(t *testing.T, kode, nama string, qty, harga int) *model.Item {
	t.Helper()
	item := &model.Item{KodeBarang: kode, NamaBarang: nama, Merek: "Generic", Qty: qty, Harga: harga}
	require.NoError(t, env.itemRepo.Create(item))
	return item
}

func (env *testEnv) seedCustomer(t *testing.T, kode, nama string) *model.Customer {
	t.Helper()
	customer := &model.Customer{KodeCustomer: kode, NamaCustomer: nama, NoHP: "0811000000", AlamatCustomer: "Jl. Test No. 1"}
	require.NoError(t, env.customerRepo.Create(customer))
	return customer
}

func (env *testEnv) itemQty(t *testing.T, id uint) int {
	t.Helper()
	item, err := env.itemRepo.FindByID(id)
	require.NoError(t, err)
	return item.Qty
}

func intPtr(n int) *int { return &n }
