package models

type OrderLine struct {
	ProductName string
	Quantity    int
}

// Order is a row from orders plus its lines. The fulfillment code treats
// orders as read-only input; only the storefront registration writes them.
type Order struct {
	ID            int64
	Firstname     string
	Lastname      string
	Phonenumber   string
	Address       string
	Status        string
	PaymentMethod string
	Comment       string
	CartTotal     int64
	Lines         []OrderLine
}

const (
	OrderStatusNew       = "NEW"
	OrderStatusProcessed = "PROCESSED"

	PaymentCash = "CASH"
	PaymentCard = "CARD"
)

var statusLabels = map[string]string{
	OrderStatusNew:       "Unprocessed",
	OrderStatusProcessed: "Processed",
}

var paymentLabels = map[string]string{
	PaymentCash: "Cash on delivery",
	PaymentCard: "Card",
}

// StatusLabel returns the display label for an order status, falling back
// to the raw value for anything unknown.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

func PaymentLabel(method string) string {
	if l, ok := paymentLabels[method]; ok {
		return l
	}
	return method
}

// OrderSummary is the manager-board view of one order: pass-through order
// fields plus the ranked list of restaurants able to fulfill it.
type OrderSummary struct {
	ID            int64             `json:"id"`
	CartTotal     int64             `json:"cart_total"`
	Firstname     string            `json:"firstname"`
	Lastname      string            `json:"lastname"`
	Phonenumber   string            `json:"phonenumber"`
	Address       string            `json:"address"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	Comment       string            `json:"comment"`
	Restaurants   []RankedRestaurant `json:"restaurants"`
	MatchError    string            `json:"match_error,omitempty"`
}

// RankedRestaurant is the presentation shape of one MatchResult.
type RankedRestaurant struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}
