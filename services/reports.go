package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/acai-pdv/models"
)

// Orders returns the full history in completion order.
func (l *Ledger) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ordersCopy(l.orders)
}

func (l *Ledger) GetOrder(id string) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, o := range l.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// DailySales returns the orders created on the calendar day of date, in
// the ledger's location.
func (l *Ledger) DailySales(date time.Time) []models.Order {
	return l.filterOrders(func(o models.Order) bool {
		return sameDay(o.CreatedAt, date, l.loc)
	})
}

func (l *Ledger) DailyTotal(date time.Time) decimal.Decimal {
	return ordersTotal(l.DailySales(date))
}

func (l *Ledger) OrdersByPaymentMethod(method models.PaymentMethod) []models.Order {
	return l.filterOrders(func(o models.Order) bool {
		return o.PaymentMethod == method
	})
}

// OrdersInRange includes both bounds.
func (l *Ledger) OrdersInRange(start, end time.Time) []models.Order {
	return l.filterOrders(func(o models.Order) bool {
		return !o.CreatedAt.Before(start) && !o.CreatedAt.After(end)
	})
}

func (l *Ledger) DailySummary(date time.Time) models.DailySummary {
	orders := l.DailySales(date)

	summary := models.DailySummary{
		Date:              date.In(l.loc).Format("2006-01-02"),
		Orders:            orders,
		TotalSales:        decimal.Zero,
		PaymentBreakdown:  make(map[models.PaymentMethod]decimal.Decimal, len(models.PaymentMethods)),
		TotalOrders:       len(orders),
		AverageOrderValue: decimal.Zero,
	}
	for _, m := range models.PaymentMethods {
		summary.PaymentBreakdown[m] = decimal.Zero
	}
	for _, o := range orders {
		summary.TotalSales = summary.TotalSales.Add(o.Total)
		summary.PaymentBreakdown[o.PaymentMethod] = summary.PaymentBreakdown[o.PaymentMethod].Add(o.Total)
	}
	if len(orders) > 0 {
		summary.AverageOrderValue = summary.TotalSales.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
		summary.TopPaymentMethod = topPaymentMethod(summary.PaymentBreakdown)
	}
	return summary
}

// topPaymentMethod picks the method with the largest total. Ties go to the
// method listed first in models.PaymentMethods.
func topPaymentMethod(breakdown map[models.PaymentMethod]decimal.Decimal) models.PaymentMethod {
	var best models.PaymentMethod
	for _, m := range models.PaymentMethods {
		if best == "" || breakdown[m].GreaterThan(breakdown[best]) {
			best = m
		}
	}
	return best
}

func (l *Ledger) filterOrders(keep func(models.Order) bool) []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.Order{}
	for _, o := range l.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

func ordersTotal(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
