package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentCredit PaymentMethod = "credito"
	PaymentDebit  PaymentMethod = "debito"
)

var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCredit, PaymentDebit}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentPix, PaymentCash, PaymentCredit, PaymentDebit:
		return true
	}
	return false
}

type OrderStatus string

// Only OrderStatusCompleted is produced by checkout today.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Topping struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItem is a cart or order line. Name and prices are copied from the
// catalog when the line is created so later catalog edits do not touch it.
type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        ProductSize     `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Toppings    []Topping       `json:"toppings"`
}

func (i OrderItem) ToppingsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range i.Toppings {
		sum = sum.Add(t.Price)
	}
	return sum
}

// LineTotal is unitPrice*quantity plus the toppings, also per unit.
func (i OrderItem) LineTotal() decimal.Decimal {
	qty := decimal.NewFromInt(int64(i.Quantity))
	return i.Price.Mul(qty).Add(i.ToppingsTotal().Mul(qty))
}

func (i OrderItem) Clone() OrderItem {
	c := i
	c.Toppings = append([]Topping(nil), i.Toppings...)
	return c
}

type Order struct {
	ID            string          `json:"id"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CashierID     string          `json:"cashier_id"`
	CashierName   string          `json:"cashier_name"`
}

func (o Order) Clone() Order {
	c := o
	c.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		c.Items[i] = item.Clone()
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// DailySummary aggregates the orders of one calendar day.
type DailySummary struct {
	Date              string                            `json:"date"`
	Orders            []Order                           `json:"orders"`
	TotalSales        decimal.Decimal                   `json:"total_sales"`
	PaymentBreakdown  map[PaymentMethod]decimal.Decimal `json:"payment_breakdown"`
	TotalOrders       int                               `json:"total_orders"`
	AverageOrderValue decimal.Decimal                   `json:"average_order_value"`
	// TopPaymentMethod has the highest total of the day; empty without orders.
	TopPaymentMethod PaymentMethod `json:"top_payment_method,omitempty"`
}
