package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/zest/product-api/internal/models"
)

// ListProducts returns a page of products, optionally filtered by a
// case-insensitive name fragment. sortColumn must already be validated
// against the allow-list.
func (r *GormRepo) ListProducts(ctx context.Context, nameFilter string, offset, limit int, sortColumn, sortDir string) (int64, []models.Product, error) {
	filtered := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Product{})
		if nameFilter != "" {
			q = q.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := filtered().
		Order(fmt.Sprintf("%s %s", sortColumn, sortDir)).
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListItemsByProduct(ctx context.Context, productID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}