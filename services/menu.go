package services

import (
	"context"

	"foodcart/db"
	"foodcart/models"
)

func ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, address, COALESCE(contact_phone, '')
		FROM restaurants
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.ContactPhone); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// ListMenuItems returns every restaurant/product pairing with its current
// availability flag, joined to product names.
func ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT mi.restaurant_id, p.name, mi.availability
		FROM menu_items mi
		INNER JOIN products p ON p.id = mi.product_id
		ORDER BY mi.restaurant_id, p.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var mi models.MenuItem
		if err := rows.Scan(&mi.RestaurantID, &mi.ProductName, &mi.Available); err != nil {
			return nil, err
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

// AvailabilityIndex maps a restaurant to the set of product names it can
// currently serve.
type AvailabilityIndex map[int64]map[string]struct{}

// BuildAvailabilityIndex derives the per-restaurant available-product sets
// from raw menu-item rows. Pure function of its inputs; availability must
// always reflect current state, so the result is rebuilt every request and
// never cached. Every listed restaurant gets an entry, empty set included.
func BuildAvailabilityIndex(restaurants []models.Restaurant, items []models.MenuItem) AvailabilityIndex {
	idx := make(AvailabilityIndex, len(restaurants))
	for _, r := range restaurants {
		idx[r.ID] = make(map[string]struct{})
	}
	for _, mi := range items {
		if !mi.Available {
			continue
		}
		set, ok := idx[mi.RestaurantID]
		if !ok {
			continue // row for a restaurant not in the listing
		}
		set[mi.ProductName] = struct{}{}
	}
	return idx
}
