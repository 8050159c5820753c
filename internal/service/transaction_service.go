package service

import (
	"errors"
	"fmt"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/repository"
	"go-bengkel-api/internal/ws"
	"go-bengkel-api/pkg/codegen"
	"go-bengkel-api/pkg/validator"

	"gorm.io/gorm"
)

type TransactionService interface {
	Create(req *model.CreateTransactionRequest) (*model.Transaction, error)
	Delete(id uint) (*model.Transaction, error)
	GetByID(id uint) (*model.TransactionView, error)
	GetAll() ([]model.Transaction, error)
	NextCode() (string, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	itemRepo        repository.ItemRepository
	db              *gorm.DB
	hub             *ws.Hub
}

func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		itemRepo:        itemRepo,
		db:              db,
		hub:             hub,
	}
}

// Create inserts the transaction, its service lines and its item lines in one
// atomic unit. Every stock reservation happens inside that unit, so a failure
// on any line rolls back all prior inserts and decrements.
func (s *transactionService) Create(req *model.CreateTransactionRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validationf("%s", validator.FirstMessage(errs))
	}

	trx := &model.Transaction{
		NoTransaksi:   req.NoTransaksi,
		TypePelanggan: req.TypePelanggan,
	}

	switch req.TypePelanggan {
	case model.CustomerMember:
		if req.CustomerID == nil {
			return nil, apperr.Validationf("customer_id is required for member transactions")
		}
		if _, err := s.customerRepo.FindByID(*req.CustomerID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, fmt.Errorf("customer %d: %w", *req.CustomerID, apperr.ErrNotFound)
			}
			return nil, err
		}
		trx.CustomerID = req.CustomerID
	case model.CustomerNonMember:
		if req.NoHPCustomer == "" {
			return nil, apperr.Validationf("no_hp_customer is required for nonmember transactions")
		}
		hp := req.NoHPCustomer
		trx.NoHPCustomer = &hp
	}

	existing, err := s.transactionRepo.FindByNo(req.NoTransaksi)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("transaction code %s: %w", req.NoTransaksi, apperr.ErrDuplicateCode)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trx).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("transaction code %s: %w", req.NoTransaksi, apperr.ErrDuplicateCode)
			}
			return err
		}

		// Incomplete service entries are dropped, not rejected.
		var services []model.TransactionService
		for _, line := range req.Services {
			if !line.Complete() {
				continue
			}
			services = append(services, model.TransactionService{
				TransaksiID: trx.ID,
				NamaJasa:    line.NamaJasa,
				Harga:       *line.Harga,
			})
		}
		if len(services) > 0 {
			if err := tx.Create(&services).Error; err != nil {
				return err
			}
		}

		// Item lines strictly in input order. Two lines for the same item
		// each reserve against the already-decremented quantity.
		for _, line := range req.Items {
			var item model.Item
			if err := tx.First(&item, "id = ?", line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("item %d: %w", line.ItemID, apperr.ErrNotFound)
				}
				return err
			}

			total := line.Jumlah*item.Harga - line.Diskon
			if total < 0 {
				return apperr.Validationf("diskon %d exceeds line price for item %s", line.Diskon, item.NamaBarang)
			}
			if line.TotalHarga != nil && *line.TotalHarga != total {
				return apperr.Validationf("total_harga mismatch for item %s: got %d, expected %d", item.NamaBarang, *line.TotalHarga, total)
			}

			if err := s.itemRepo.ReserveStock(tx, item.ID, line.Jumlah); err != nil {
				if errors.Is(err, apperr.ErrInsufficientStock) {
					return fmt.Errorf("item %s: %w", item.NamaBarang, apperr.ErrInsufficientStock)
				}
				return err
			}

			if err := tx.Create(&model.TransactionItem{
				TransaksiID: trx.ID,
				ItemID:      item.ID,
				Jumlah:      line.Jumlah,
				TotalHarga:  total,
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read the full view after commit.
	full, err := s.transactionRepo.FindByID(trx.ID)
	if err != nil {
		return nil, err
	}

	go s.hub.BroadcastEvent("transaction_created", full)
	return full, nil
}

// Delete restores the stock every item line consumed, then removes children
// and parent, all in one atomic unit. The FK cascade stays in the schema as a
// safety net but the deletion order here is explicit.
func (s *transactionService) Delete(id uint) (*model.Transaction, error) {
	trx, err := s.transactionRepo.FindWithItems(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range trx.TransactionItems {
			if err := s.itemRepo.RestoreStock(tx, line.ItemID, line.Jumlah); err != nil {
				return err
			}
		}
		if err := tx.Where("transaksi_id = ?", trx.ID).Delete(&model.TransactionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaksi_id = ?", trx.ID).Delete(&model.TransactionService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Transaction{}, trx.ID).Error
	})
	if err != nil {
		return nil, err
	}

	go s.hub.BroadcastEvent("transaction_deleted", trx)
	return trx, nil
}

func (s *transactionService) GetByID(id uint) (*model.TransactionView, error) {
	trx, err := s.transactionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &model.TransactionView{
		Transaction: *trx,
		Summary:     trx.Summarize(),
	}, nil
}

func (s *transactionService) GetAll() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *transactionService) NextCode() (string, error) {
	last, err := s.transactionRepo.LastNo()
	if err != nil {
		return "", err
	}
	return codegen.Next(codegen.TransactionPrefix, last)
}
