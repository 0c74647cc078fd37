package models

type Product struct {
	ID            int64
	Name          string
	Category      string
	Price         int64 // minor units
	SpecialStatus bool
	Ingredients   string
}
