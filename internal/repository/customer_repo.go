package repository

import (
	"errors"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uint) (*model.Customer, error)
	FindByKode(kode string) (*model.Customer, error)
	LastKode() (string, error)
	Update(customer *model.Customer) error
	Delete(id uint) error
	CountTransactions(id uint) (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	err := r.db.Create(customer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateCode
	}
	return err
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("tgl_daftar DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &customer, err
}

func (r *customerRepo) FindByKode(kode string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "kode_customer = ?", kode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &customer, err
}

// LastKode returns the highest business code, empty string for an empty table.
func (r *customerRepo) LastKode() (string, error) {
	var customer model.Customer
	err := r.db.Order("kode_customer DESC").First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return customer.KodeCustomer, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	err := r.db.Save(customer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateCode
	}
	return err
}

func (r *customerRepo) Delete(id uint) error {
	return r.db.Delete(&model.Customer{}, id).Error
}

func (r *customerRepo) CountTransactions(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Where("customer_id = ?", id).Count(&count).Error
	return count, err
}
