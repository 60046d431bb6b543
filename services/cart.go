package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/acai-pdv/models"
)

func (l *Ledger) CurrentOrder() []models.OrderItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneItems(l.cart)
}

func (l *Ledger) CartTotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return itemsTotal(l.cart)
}

// AddToCurrentOrder appends item to the cart under a fresh id.
func (l *Ledger) AddToCurrentOrder(item models.OrderItem) (models.OrderItem, error) {
	var added models.OrderItem
	err := l.mutate(func() ([]Event, error) {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		added = item.Clone()
		added.ID = l.newID()
		l.cart = append(l.cart, added)
		return []Event{{Type: EventCartChanged}}, nil
	})
	return added, err
}

// AddProductToCart builds a cart line from the catalog: name and price are
// copied from the product and toppings from the topping products. For
// stock-tracked products the pots already in the cart plus quantity must
// be available.
func (l *Ledger) AddProductToCart(productID string, size models.ProductSize, quantity int, toppingIDs []string) (models.OrderItem, error) {
	var added models.OrderItem
	err := l.mutate(func() ([]Event, error) {
		if quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		pidx := l.productIndex(productID)
		if pidx < 0 || !l.products[pidx].Active {
			return nil, ErrProductNotFound
		}
		product := l.products[pidx]
		price, ok := product.PriceFor(size)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
		}

		toppings := make([]models.Topping, 0, len(toppingIDs))
		for _, id := range toppingIDs {
			tidx := l.productIndex(id)
			if tidx < 0 || l.products[tidx].Category != models.CategoryTopping || !l.products[tidx].Active {
				return nil, fmt.Errorf("%w: topping %s", ErrProductNotFound, id)
			}
			t := l.products[tidx]
			toppings = append(toppings, models.Topping{ID: t.ID, Name: t.Name, Price: t.BasePrice()})
		}

		if product.TracksInventory {
			key := models.StockKey{ProductID: productID, Size: size}
			inCart := 0
			for _, it := range l.cart {
				if it.ProductID == productID && it.Size == size {
					inCart += it.Quantity
				}
			}
			if err := l.checkAvailable(key, inCart+quantity); err != nil {
				if errors.Is(err, ErrStockNotFound) {
					return nil, fmt.Errorf("%w: no stock record for %s %s", ErrInsufficientStock, product.Name, size)
				}
				return nil, err
			}
		}

		added = models.OrderItem{
			ID:          l.newID(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        size,
			Price:       price,
			Quantity:    quantity,
			Toppings:    toppings,
		}
		l.cart = append(l.cart, added)
		return []Event{{Type: EventCartChanged}}, nil
	})
	return added, err
}

// UpdateOrderItem merges patch into the cart line with the given id.
func (l *Ledger) UpdateOrderItem(id string, patch models.OrderItemPatch) (models.OrderItem, error) {
	var updated models.OrderItem
	err := l.mutate(func() ([]Event, error) {
		idx := l.cartIndex(id)
		if idx < 0 {
			return nil, ErrCartItemNotFound
		}
		next := l.cart[idx].Clone()
		if patch.Quantity != nil {
			if *patch.Quantity <= 0 {
				return nil, ErrInvalidQuantity
			}
			next.Quantity = *patch.Quantity
		}
		if patch.Size != nil {
			if !patch.Size.IsValid() {
				return nil, fmt.Errorf("%w: %s", ErrInvalidSize, *patch.Size)
			}
			next.Size = *patch.Size
		}
		if patch.Price != nil {
			next.Price = *patch.Price
		}
		if patch.Toppings != nil {
			next.Toppings = append([]models.Topping{}, patch.Toppings...)
		}
		l.cart[idx] = next
		updated = next.Clone()
		return []Event{{Type: EventCartChanged}}, nil
	})
	return updated, err
}

func (l *Ledger) RemoveFromCurrentOrder(id string) error {
	return l.mutate(func() ([]Event, error) {
		idx := l.cartIndex(id)
		if idx < 0 {
			return nil, ErrCartItemNotFound
		}
		l.cart = append(l.cart[:idx], l.cart[idx+1:]...)
		return []Event{{Type: EventCartChanged}}, nil
	})
}

func (l *Ledger) ClearCurrentOrder() {
	_ = l.mutate(func() ([]Event, error) {
		l.cart = nil
		return []Event{{Type: EventCartChanged}}, nil
	})
}

func (l *Ledger) cartIndex(id string) int {
	for i, it := range l.cart {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func itemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
