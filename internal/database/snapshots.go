package database

import (
	"go-pos-insight/internal/models"
)

// FetchSalesSnapshot loads completed sales with their line items and the
// current product record behind each line. The analytics engine works on
// these in-memory snapshots; it never touches the database itself, so the
// line items carry both the historical price (PriceAtSale) and the current
// catalog price (Product.Price).
func FetchSalesSnapshot() ([]models.Sale, error) {
	var sales []models.Sale
	err := DB.Preload("Items.Product").
		Where("status = ?", "completed").
		Order("sale_time asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// FetchProductSnapshot loads the full catalog for stock and pricing checks.
func FetchProductSnapshot() ([]models.Product, error) {
	var products []models.Product
	if err := DB.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
