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
)

type ItemService interface {
	Create(req *model.Item) error
	GetAll() ([]model.Item, error)
	GetByID(id uint) (*model.Item, error)
	Update(id uint, req *model.Item) (*model.Item, error)
	Delete(id uint) (*model.Item, error)
	NextCode() (string, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	hub      *ws.Hub
}

func NewItemService(itemRepo repository.ItemRepository, hub *ws.Hub) ItemService {
	return &itemService{itemRepo: itemRepo, hub: hub}
}

func (s *itemService) Create(req *model.Item) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validationf("%s", validator.FirstMessage(errs))
	}

	existing, err := s.itemRepo.FindByKode(req.KodeBarang)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("item code %s: %w", req.KodeBarang, apperr.ErrDuplicateCode)
	}

	if err := s.itemRepo.Create(req); err != nil {
		return err
	}

	go s.hub.BroadcastEvent("item_created", req)
	return nil
}

func (s *itemService) GetAll() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetByID(id uint) (*model.Item, error) {
	return s.itemRepo.FindByID(id)
}

// Update covers the descriptive fields plus qty, which is the stock-in path
// for the warehouse (transaction lines are the only stock-out path).
func (s *itemService) Update(id uint, req *model.Item) (*model.Item, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validationf("%s", validator.FirstMessage(errs))
	}

	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.KodeBarang != existing.KodeBarang {
		inUse, err := s.itemRepo.FindByKode(req.KodeBarang)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		if inUse != nil {
			return nil, fmt.Errorf("item code %s: %w", req.KodeBarang, apperr.ErrDuplicateCode)
		}
	}

	existing.KodeBarang = req.KodeBarang
	existing.NamaBarang = req.NamaBarang
	existing.Merek = req.Merek
	existing.Harga = req.Harga
	existing.Qty = req.Qty

	if err := s.itemRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.hub.BroadcastEvent("item_updated", existing)
	return existing, nil
}

func (s *itemService) Delete(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	count, err := s.itemRepo.CountTransactionItems(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("item %s appears in %d transaction lines: %w", item.NamaBarang, count, apperr.ErrConflictInUse)
	}

	if err := s.itemRepo.Delete(id); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) NextCode() (string, error) {
	last, err := s.itemRepo.LastKode()
	if err != nil {
		return "", err
	}
	return codegen.Next(codegen.ItemPrefix, last)
}
