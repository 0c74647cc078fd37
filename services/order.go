package services

import (
	"context"
	"fmt"

	"foodcart/db"
	"foodcart/models"
)

const maxLineQuantity = 25

type RegisterOrderLine struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

type RegisterOrderInput struct {
	Firstname     string              `json:"firstname"`
	Lastname      string              `json:"lastname"`
	Phonenumber   string              `json:"phonenumber"`
	Address       string              `json:"address"`
	PaymentMethod string              `json:"payment_method"`
	Comment       string              `json:"comment"`
	Products      []RegisterOrderLine `json:"products"`
}

func ValidateRegisterOrder(input RegisterOrderInput) error {
	if input.Firstname == "" {
		return fmt.Errorf("firstname is required")
	}
	if input.Phonenumber == "" {
		return fmt.Errorf("phonenumber is required")
	}
	if input.Address == "" {
		return fmt.Errorf("address is required")
	}
	if len(input.Products) == 0 {
		return fmt.Errorf("expects not empty list of products")
	}
	for _, line := range input.Products {
		if line.Quantity < 1 || line.Quantity > maxLineQuantity {
			return fmt.Errorf("quantity must be between 1 and %d", maxLineQuantity)
		}
	}
	return nil
}

// RegisterOrder validates and stores a storefront order with its lines.
// Each line captures product_total = price * quantity at registration time
// so later price edits don't rewrite history. The order and its lines are
// written in one transaction: a line referencing an unknown product fails
// the whole registration instead of leaving a lineless order behind.
func RegisterOrder(ctx context.Context, input RegisterOrderInput) (int64, error) {
	if err := ValidateRegisterOrder(input); err != nil {
		return 0, err
	}

	payment := input.PaymentMethod
	if payment == "" {
		payment = models.PaymentCash
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (firstname, lastname, phonenumber, address, status, payment_method, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		input.Firstname, input.Lastname, input.Phonenumber, input.Address,
		models.OrderStatusNew, payment, input.Comment,
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, line := range input.Products {
		tag, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, product_total)
			SELECT $1, p.id, $2, p.price * $2
			FROM products p WHERE p.id = $3`,
			orderID, line.Quantity, line.ProductID,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order line (product %d): %w", line.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("unknown product %d", line.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetOrder returns one order with its lines, or an error if absent.
func GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT o.id, o.firstname, o.lastname, o.phonenumber, o.address,
		       o.status, o.payment_method, COALESCE(o.comment, ''),
		       COALESCE((SELECT SUM(oi.product_total) FROM order_items oi WHERE oi.order_id = o.id), 0)::bigint
		FROM orders o WHERE o.id = $1`,
		id,
	).Scan(&o.ID, &o.Firstname, &o.Lastname, &o.Phonenumber, &o.Address,
		&o.Status, &o.PaymentMethod, &o.Comment, &o.CartTotal)
	if err != nil {
		return nil, err
	}
	lines, err := listOrderLines(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	return &o, nil
}

// ListOrders returns all orders with lines and cart totals, oldest first.
func ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT o.id, o.firstname, o.lastname, o.phonenumber, o.address,
		       o.status, o.payment_method, COALESCE(o.comment, ''),
		       COALESCE((SELECT SUM(oi.product_total) FROM order_items oi WHERE oi.order_id = o.id), 0)::bigint
		FROM orders o
		ORDER BY o.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	var ids []int64
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Firstname, &o.Lastname, &o.Phonenumber, &o.Address,
			&o.Status, &o.PaymentMethod, &o.Comment, &o.CartTotal); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := listOrderLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}
	return orders, nil
}

func listOrderLines(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderLine, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT oi.order_id, p.name, oi.quantity
		FROM order_items oi
		INNER JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id`,
		orderIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[int64][]models.OrderLine)
	for rows.Next() {
		var orderID int64
		var line models.OrderLine
		if err := rows.Scan(&orderID, &line.ProductName, &line.Quantity); err != nil {
			return nil, err
		}
		lines[orderID] = append(lines[orderID], line)
	}
	return lines, rows.Err()
}

// MarkOrderProcessed flips an order from NEW to PROCESSED.
func MarkOrderProcessed(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		models.OrderStatusProcessed, id, models.OrderStatusNew,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found or already processed", id)
	}
	return nil
}
