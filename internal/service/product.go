package service

import (
	"context"
	"fmt"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) AddProduct(ctx context.Context, product *domain.Product) error {
	if product.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if product.PricePaise <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if product.DepositPaise < 0 {
		return fmt.Errorf("%w: deposit cannot be negative", domain.ErrValidation)
	}
	if !product.Period.Valid() {
		return fmt.Errorf("%w: unknown rate period %q", domain.ErrValidation, product.Period)
	}
	if product.Status == "" {
		product.Status = domain.ProductStatusAvailable
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) UpdateProduct(ctx context.Context, actingUserID int64, product *domain.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actingUserID {
		return fmt.Errorf("%w: only the owner may update a product", domain.ErrUnauthorized)
	}
	if !product.Period.Valid() {
		return fmt.Errorf("%w: unknown rate period %q", domain.ErrValidation, product.Period)
	}
	product.OwnerID = existing.OwnerID
	return s.productRepo.Update(ctx, product)
}

func (s *productService) ListMyProducts(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Product, int64, error) {
	return s.productRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *productService) ListAvailableProducts(ctx context.Context, page, pageSize int64) ([]domain.Product, int64, error) {
	return s.productRepo.ListAvailable(ctx, page, pageSize)
}
