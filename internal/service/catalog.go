package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zest/product-api/internal/events"
	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/models"
	"github.com/zest/product-api/internal/repo"
	"github.com/zest/product-api/internal/search"
	"github.com/zest/product-api/internal/util"
)

// CatalogService implements product CRUD on top of the store, emitting
// audit events and mirroring mutations into the search index.
type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Index    *search.Index
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Content       []models.Product `json:"content"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int64            `json:"totalPages"`
	Last          bool             `json:"last"`
}

func (s *CatalogService) ListProducts(ctx context.Context, nameFilter string, page, size int, sortBy, sortDir string) (*ProductPage, error) {
	column, err := util.ProductSortColumn(sortBy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListProducts(ctx, nameFilter, offset, limit, column, util.SortDirection(sortDir))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &ProductPage{
		Content:       items,
		Page:          offset / limit,
		Size:          limit,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          int64(offset+limit) >= total,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, name, createdBy string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if strings.TrimSpace(createdBy) == "" {
		createdBy = "system"
	}

	product := models.Product{ProductName: name, CreatedBy: createdBy}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.afterMutation(ctx, "product_created", &product, createdBy)
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, name, modifiedBy string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ProductName = name
	product.ModifiedBy = modifiedBy
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.afterMutation(ctx, "product_updated", product, modifiedBy)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		l.Warn("search_deindex_failed", "product_id", id, "error", err)
	}
	s.publishProductEvent(ctx, "product_deleted", id, "", "system")
	return nil
}

func (s *CatalogService) ListItems(ctx context.Context, productID uint) ([]models.Item, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListItemsByProduct(ctx, productID)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, page, size int) (*ProductPage, error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Index.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &ProductPage{
		Content:       items,
		Page:          offset / limit,
		Size:          limit,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          int64(offset+limit) >= total,
	}, nil
}

func (s *CatalogService) SearchEnabled() bool { return s.Index.Enabled() }

// afterMutation mirrors the product into the search index and emits an
// audit event. Both are best-effort; the row is already committed.
func (s *CatalogService) afterMutation(ctx context.Context, eventType string, product *models.Product, actor string) {
	l := logging.FromContext(ctx)
	if err := s.Index.IndexProduct(ctx, product); err != nil {
		l.Warn("search_index_failed", "product_id", product.ID, "error", err)
	}
	s.publishProductEvent(ctx, eventType, product.ID, product.ProductName, actor)
}

func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, id uint, name, actor string) {
	err := s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      eventType,
		"productID": id,
		"name":      name,
		"actor":     actor,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("product_event_publish_failed", "type", eventType, "error", err)
	}
}
