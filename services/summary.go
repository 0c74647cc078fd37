package services

import (
	"context"
	"errors"

	"foodcart/models"

	"github.com/rs/zerolog/log"
)

// AssembleSummaries builds the manager order board: one summary per order,
// in order-listing order, each with its ranked feasible restaurants. The
// availability index is built once for the whole batch since menu state
// does not change mid-call. An order whose address cannot be geocoded still
// appears, with no restaurants and a recorded failure reason; one bad
// address must not hide the rest of the list.
func AssembleSummaries(ctx context.Context, matcher *Matcher, orders []models.Order, restaurants []models.Restaurant, items []models.MenuItem) []models.OrderSummary {
	idx := BuildAvailabilityIndex(restaurants, items)

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summary := models.OrderSummary{
			ID:            order.ID,
			CartTotal:     order.CartTotal,
			Firstname:     order.Firstname,
			Lastname:      order.Lastname,
			Phonenumber:   order.Phonenumber,
			Address:       order.Address,
			Status:        models.StatusLabel(order.Status),
			PaymentMethod: models.PaymentLabel(order.PaymentMethod),
			Comment:       order.Comment,
			Restaurants:   []models.RankedRestaurant{},
		}

		matches, err := matcher.MatchOrder(ctx, order, restaurants, idx)
		if err != nil {
			if !errors.Is(err, ErrOrderAddressUnresolvable) {
				log.Error().Err(err).Int64("order_id", order.ID).Msg("order match failed")
			}
			summary.MatchError = "delivery address could not be located"
			summaries = append(summaries, summary)
			continue
		}
		for _, m := range matches {
			summary.Restaurants = append(summary.Restaurants, models.RankedRestaurant{
				Name:       m.Restaurant.Name,
				DistanceKm: m.DistanceKm,
			})
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// LoadAndAssemble reads orders, restaurants and menu items and assembles
// the summaries for them.
func LoadAndAssemble(ctx context.Context, matcher *Matcher) ([]models.OrderSummary, error) {
	orders, err := ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	restaurants, err := ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	items, err := ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return AssembleSummaries(ctx, matcher, orders, restaurants, items), nil
}
