package service

import (
	"errors"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(req *model.Product) error
	Update(id uuid.UUID, req *model.Product) (*model.Product, error)
	Delete(id uuid.UUID) error
	List(filter repository.ProductFilter) ([]model.Product, int64, error)
	Get(id uuid.UUID) (*model.Product, error)
	LowStock(threshold int) ([]model.Product, error)
}

type productService struct {
	txm      repository.TxManager
	products repository.ProductRepository
	orders   repository.OrderRepository
	hub      *ws.Hub
}

func NewProductService(txm repository.TxManager, products repository.ProductRepository, orders repository.OrderRepository, hub *ws.Hub) ProductService {
	return &productService{txm: txm, products: products, orders: orders, hub: hub}
}

func (s *productService) Create(req *model.Product) error {
	if err := validator.Check(req); err != nil {
		return err
	}

	existing, _ := s.products.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	if req.Status == "" {
		req.Status = model.ProductStatusActive
	}

	if err := s.products.Create(req); err != nil {
		return err
	}

	s.publish("product_created", req)
	return nil
}

// Update edits catalog fields under a row lock. Stock set here is a
// direct edit; it still may not go negative.
func (s *productService) Update(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		existing, err := s.products.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if req.SKU != existing.SKU {
			duplicate, _ := s.products.FindBySKU(req.SKU)
			if duplicate != nil && duplicate.ID != uuid.Nil {
				return ErrSKUExists
			}
		}

		existing.SKU = req.SKU
		existing.Name = req.Name
		existing.Description = req.Description
		existing.Category = req.Category
		existing.Price = req.Price
		existing.Stock = req.Stock
		existing.Status = req.Status
		existing.Featured = req.Featured

		if err := s.products.Update(tx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("product_updated", updated)
	return updated, nil
}

// Delete refuses while orders still reference the product; the
// referential rule is enforced here, not by the schema.
func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.products.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	count, err := s.orders.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}

	s.publish("product_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.products.FindAll(filter)
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) LowStock(threshold int) ([]model.Product, error) {
	return s.products.FindLowStock(threshold)
}

func (s *productService) publish(event string, data interface{}) {
	if s.hub == nil {
		return
	}
	go s.hub.Publish(event, data)
}
