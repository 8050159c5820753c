package repository

import (
	"errors"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll() ([]model.Transaction, error)
	FindByID(id uint) (*model.Transaction, error)
	FindByNo(no string) (*model.Transaction, error)
	FindWithItems(id uint) (*model.Transaction, error)
	LastNo() (string, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Customer").
		Preload("TransactionServices").
		Preload("TransactionItems").
		Preload("TransactionItems.Item").
		Order("tgl_transaksi DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Customer").
		Preload("TransactionServices").
		Preload("TransactionItems").
		Preload("TransactionItems.Item").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &transaction, err
}

func (r *transactionRepo) FindByNo(no string) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.First(&transaction, "no_transaksi = ?", no).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &transaction, err
}

// FindWithItems loads only the item lines, enough for the delete flow to
// restore stock.
func (r *transactionRepo) FindWithItems(id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("TransactionItems").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &transaction, err
}

func (r *transactionRepo) LastNo() (string, error) {
	var transaction model.Transaction
	err := r.db.Order("no_transaksi DESC").First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return transaction.NoTransaksi, err
}
