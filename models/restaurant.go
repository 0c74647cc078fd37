package models

type Restaurant struct {
	ID           int64
	Name         string
	Address      string
	ContactPhone string
}

// MenuItem is a row from menu_items: one product offered (or suspended)
// by one restaurant. Only Available = true rows count toward fulfillment.
type MenuItem struct {
	RestaurantID int64
	ProductName  string
	Available    bool
}

// MatchResult is one restaurant able to fulfill an order, with the
// great-circle distance to the delivery address.
type MatchResult struct {
	Restaurant Restaurant
	DistanceKm float64
}
