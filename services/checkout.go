package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/acai-pdv/models"
	"go.uber.org/multierr"
)

// Rejection reasons carried by EventFinalizeRejected.
const (
	ReasonEmptyCart            = "empty_cart"
	ReasonNoCashier            = "no_cashier"
	ReasonInvalidPaymentMethod = "invalid_payment_method"
	ReasonInsufficientStock    = "insufficient_stock"
)

// FinalizeOrder turns the cart into a completed order. Stock for every
// tracked line is checked first, summed per product size, and nothing is
// consumed unless all of it is available. Every shortage is reported in
// the returned error.
func (l *Ledger) FinalizeOrder(method models.PaymentMethod, customerName string) (models.Order, error) {
	var order models.Order
	err := l.mutate(func() ([]Event, error) {
		reject := func(reason string, err error) ([]Event, error) {
			return []Event{{Type: EventFinalizeRejected, Reason: reason, Err: err}}, err
		}

		if !method.IsValid() {
			return reject(ReasonInvalidPaymentMethod, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method))
		}
		if len(l.cart) == 0 {
			return reject(ReasonEmptyCart, ErrEmptyCart)
		}
		if l.currentUser == nil {
			return reject(ReasonNoCashier, ErrNoCashier)
		}

		keys, demand := l.trackedDemand()
		var shortages error
		for _, key := range keys {
			if err := l.checkAvailable(key, demand[key]); err != nil {
				if errors.Is(err, ErrStockNotFound) {
					err = fmt.Errorf("%w: no stock record for %s %s", ErrInsufficientStock, key.ProductID, key.Size)
				}
				shortages = multierr.Append(shortages, err)
			}
		}
		if shortages != nil {
			return reject(ReasonInsufficientStock, shortages)
		}

		var events []Event
		for _, key := range keys {
			events = append(events, stockEvents(l.consume(key, demand[key]))...)
		}

		now := l.now()
		completed := now
		order = models.Order{
			ID:            l.newID(),
			Items:         cloneItems(l.cart),
			Total:         itemsTotal(l.cart),
			PaymentMethod: method,
			CustomerName:  strings.TrimSpace(customerName),
			Status:        models.OrderStatusCompleted,
			CreatedAt:     now,
			CompletedAt:   &completed,
			CashierID:     l.currentUser.ID,
			CashierName:   l.currentUser.Name,
		}
		l.orders = append(l.orders, order)
		l.cart = nil
		order = order.Clone()

		ev := order.Clone()
		events = append(events,
			Event{Type: EventOrderFinalized, Order: &ev},
			Event{Type: EventCartChanged},
		)
		return events, nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// trackedDemand sums cart quantities per stock key for tracked products,
// keeping the order in which keys first appear.
func (l *Ledger) trackedDemand() ([]models.StockKey, map[models.StockKey]int) {
	var keys []models.StockKey
	demand := make(map[models.StockKey]int)
	for _, it := range l.cart {
		if !l.tracksInventory(it.ProductID) {
			continue
		}
		key := models.StockKey{ProductID: it.ProductID, Size: it.Size}
		if _, seen := demand[key]; !seen {
			keys = append(keys, key)
		}
		demand[key] += it.Quantity
	}
	return keys, demand
}

// Shortages splits a finalize error into its per-size failures.
func Shortages(err error) []error {
	var out []error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, ErrInsufficientStock) {
			out = append(out, e)
		}
	}
	return out
}
