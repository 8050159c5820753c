package repository

import (
	"errors"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"

	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uint) (*model.Item, error)
	FindByKode(kode string) (*model.Item, error)
	LastKode() (string, error)
	Update(item *model.Item) error
	Delete(id uint) error
	CountTransactionItems(id uint) (int64, error)

	// Stock ledger. Both run on the caller's transaction handle so the
	// quantity change commits or rolls back with the rest of the unit.
	ReserveStock(tx *gorm.DB, id uint, qty int) error
	RestoreStock(tx *gorm.DB, id uint, qty int) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	err := r.db.Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateCode
	}
	return err
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Order("nama_barang ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &item, err
}

func (r *itemRepo) FindByKode(kode string) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, "kode_barang = ?", kode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &item, err
}

func (r *itemRepo) LastKode() (string, error) {
	var item model.Item
	err := r.db.Order("kode_barang DESC").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return item.KodeBarang, err
}

func (r *itemRepo) Update(item *model.Item) error {
	err := r.db.Save(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateCode
	}
	return err
}

func (r *itemRepo) Delete(id uint) error {
	return r.db.Delete(&model.Item{}, id).Error
}

func (r *itemRepo) CountTransactionItems(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TransactionItem{}).Where("item_id = ?", id).Count(&count).Error
	return count, err
}

// ReserveStock decrements qty with a conditional update so the check and the
// decrement are one statement. Concurrent reservations serialize on the row
// write; the quantity can never be observed stale between check and apply.
func (r *itemRepo) ReserveStock(tx *gorm.DB, id uint, qty int) error {
	res := tx.Model(&model.Item{}).
		Where("id = ? AND qty >= ?", id, qty).
		UpdateColumn("qty", gorm.Expr("qty - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.Item{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.ErrNotFound
		}
		return apperr.ErrInsufficientStock
	}
	return nil
}

// RestoreStock replays a previously reserved quantity back onto the item. No
// upper bound check: the amount mirrors a recorded line, it is not re-derived.
func (r *itemRepo) RestoreStock(tx *gorm.DB, id uint, qty int) error {
	res := tx.Model(&model.Item{}).
		Where("id = ?", id).
		UpdateColumn("qty", gorm.Expr("qty + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
