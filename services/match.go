package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"foodcart/geo"
	"foodcart/models"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

// ErrOrderAddressUnresolvable: the order's own delivery address could not
// be geocoded, so no restaurant can be ranked for it. Surfaced per order;
// the assembler turns it into an empty ranked list instead of aborting the
// batch.
var ErrOrderAddressUnresolvable = errors.New("order address unresolvable")

// Geocoder is the outbound address resolution dependency of the matcher.
// *geo.Client satisfies it; tests substitute fakes.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (orb.Point, error)
}

// Matcher finds, for one order, the restaurants that carry every ordered
// item and ranks them by distance to the delivery address. Coordinates are
// the only thing it caches; feasibility is recomputed every call.
type Matcher struct {
	Cache         *geo.Cache
	Geocoder      Geocoder
	RestaurantTTL time.Duration
	OrderTTL      time.Duration
}

func NewMatcher(cache *geo.Cache, geocoder Geocoder, restaurantTTL, orderTTL time.Duration) *Matcher {
	return &Matcher{
		Cache:         cache,
		Geocoder:      geocoder,
		RestaurantTTL: restaurantTTL,
		OrderTTL:      orderTTL,
	}
}

// MatchOrder returns the feasible restaurants for the order, closest first.
// Ties keep the restaurant listing order. A restaurant whose address fails
// to geocode is excluded rather than failing the whole match; a failure on
// the order's own address returns ErrOrderAddressUnresolvable.
func (m *Matcher) MatchOrder(ctx context.Context, order models.Order, restaurants []models.Restaurant, idx AvailabilityIndex) ([]models.MatchResult, error) {
	required := make(map[string]struct{}, len(order.Lines))
	for _, line := range order.Lines {
		required[line.ProductName] = struct{}{}
	}
	// An order with no items matches nothing; the subset test alone would
	// vacuously match every restaurant.
	if len(required) == 0 {
		return nil, nil
	}

	var feasible []models.Restaurant
	for _, r := range restaurants {
		if containsAll(idx[r.ID], required) {
			feasible = append(feasible, r)
		}
	}
	if len(feasible) == 0 {
		return nil, nil
	}

	orderCoord, err := m.Cache.GetOrResolve(orderCacheKey(order), m.OrderTTL, func() (orb.Point, error) {
		return m.Geocoder.Resolve(ctx, order.Address)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderAddressUnresolvable, err)
	}

	results := make([]models.MatchResult, 0, len(feasible))
	for _, r := range feasible {
		restaurant := r
		coord, err := m.Cache.GetOrResolve(restaurantCacheKey(restaurant), m.RestaurantTTL, func() (orb.Point, error) {
			return m.Geocoder.Resolve(ctx, restaurant.Address)
		})
		if err != nil {
			log.Warn().Err(err).
				Int64("restaurant_id", restaurant.ID).
				Str("restaurant", restaurant.Name).
				Msg("excluding restaurant: geocoding failed")
			continue
		}
		results = append(results, models.MatchResult{
			Restaurant: restaurant,
			DistanceKm: geo.DistanceKm(coord, orderCoord),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

func containsAll(available map[string]struct{}, required map[string]struct{}) bool {
	for name := range required {
		if _, ok := available[name]; !ok {
			return false
		}
	}
	return true
}

// Cache keys are derived from the identity that produced the coordinate,
// never from mutable composites that could go stale silently.
func restaurantCacheKey(r models.Restaurant) string {
	return fmt.Sprintf("restaurant:%d", r.ID)
}

func orderCacheKey(o models.Order) string {
	return "order:" + o.Address
}
