package services

import (
	"context"

	"foodcart/db"
	"foodcart/models"
)

// ListAvailableProducts returns products on sale in at least one restaurant,
// for the storefront listing.
func ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT p.id, p.name, COALESCE(p.category, ''), p.price,
		       p.special_status, COALESCE(p.ingredients, '')
		FROM products p
		INNER JOIN menu_items mi ON mi.product_id = p.id
		WHERE mi.availability = true
		ORDER BY p.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.SpecialStatus, &p.Ingredients); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
