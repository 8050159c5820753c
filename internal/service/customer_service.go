package service

import (
	"errors"
	"fmt"

	"go-bengkel-api/internal/apperr"
	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/repository"
	"go-bengkel-api/pkg/codegen"
	"go-bengkel-api/pkg/validator"
)

type CustomerService interface {
	Create(req *model.Customer) error
	GetAll() ([]model.Customer, error)
	GetByID(id uint) (*model.Customer, error)
	Update(id uint, req *model.Customer) (*model.Customer, error)
	Delete(id uint) (*model.Customer, error)
	NextCode() (string, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(req *model.Customer) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validationf("%s", validator.FirstMessage(errs))
	}

	existing, err := s.customerRepo.FindByKode(req.KodeCustomer)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("customer code %s: %w", req.KodeCustomer, apperr.ErrDuplicateCode)
	}

	return s.customerRepo.Create(req)
}

func (s *customerService) GetAll() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetByID(id uint) (*model.Customer, error) {
	return s.customerRepo.FindByID(id)
}

func (s *customerService) Update(id uint, req *model.Customer) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validationf("%s", validator.FirstMessage(errs))
	}

	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.KodeCustomer != existing.KodeCustomer {
		inUse, err := s.customerRepo.FindByKode(req.KodeCustomer)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		if inUse != nil {
			return nil, fmt.Errorf("customer code %s: %w", req.KodeCustomer, apperr.ErrDuplicateCode)
		}
	}

	existing.KodeCustomer = req.KodeCustomer
	existing.NamaCustomer = req.NamaCustomer
	existing.NoHP = req.NoHP
	existing.AlamatCustomer = req.AlamatCustomer

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) Delete(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	count, err := s.customerRepo.CountTransactions(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("customer %s has %d transactions: %w", customer.NamaCustomer, count, apperr.ErrConflictInUse)
	}

	if err := s.customerRepo.Delete(id); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) NextCode() (string, error) {
	last, err := s.customerRepo.LastKode()
	if err != nil {
		return "", err
	}
	return codegen.Next(codegen.CustomerPrefix, last)
}
