package services

import (
	"fmt"

	"github.com/yeremiapane/acai-pdv/models"
)

func (l *Ledger) Stock() []models.StockItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.StockItem{}, l.stock...)
}

func (l *Ledger) LowStock() []models.StockItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.StockItem{}
	for _, item := range l.stock {
		if item.IsLow() {
			out = append(out, item)
		}
	}
	return out
}

func (l *Ledger) StockSummary() models.StockSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum models.StockSummary
	for _, item := range l.stock {
		sum.TotalPackages += item.Packages
		sum.TotalPots += item.AvailablePots
		if item.IsLow() {
			sum.LowStockCount++
		}
	}
	return sum
}

func (l *Ledger) GetStockByKey(productID string, size models.ProductSize) (models.StockItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.stockIndex(models.StockKey{ProductID: productID, Size: size})
	if idx < 0 {
		return models.StockItem{}, false
	}
	return l.stock[idx], true
}

// AddStockItem registers a new (product, size) record. AvailablePots is
// derived from the package count.
func (l *Ledger) AddStockItem(item models.StockItem) (models.StockItem, error) {
	var created models.StockItem
	err := l.mutate(func() ([]Event, error) {
		pidx := l.productIndex(item.ProductID)
		if pidx < 0 {
			return nil, ErrProductNotFound
		}
		if _, ok := l.products[pidx].PriceFor(item.Size); !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSize, item.Size)
		}
		if l.stockIndex(item.Key()) >= 0 {
			return nil, ErrStockExists
		}
		if item.Packages < 0 || item.PotsPerPackage <= 0 || item.MinimumLevel < 0 {
			return nil, ErrInvalidQuantity
		}
		created = item
		created.ID = l.newID()
		created.AvailablePots = item.Packages * item.PotsPerPackage
		created.LastUpdated = l.now()
		l.stock = append(l.stock, created)
		return stockEvents(created), nil
	})
	return created, err
}

// SetStockPackages replaces the package count of a record and recomputes
// the available pots from it.
func (l *Ledger) SetStockPackages(productID string, size models.ProductSize, packages int) error {
	return l.mutate(func() ([]Event, error) {
		if packages < 0 {
			return nil, ErrInvalidQuantity
		}
		idx := l.stockIndex(models.StockKey{ProductID: productID, Size: size})
		if idx < 0 {
			return nil, ErrStockNotFound
		}
		item := &l.stock[idx]
		item.Packages = packages
		item.AvailablePots = packages * item.PotsPerPackage
		item.LastUpdated = l.now()
		return stockEvents(*item), nil
	})
}

// ConsumeStock takes quantity pots from a record. It fails without any
// change when the record is unknown or holds fewer pots.
func (l *Ledger) ConsumeStock(productID string, size models.ProductSize, quantity int) error {
	return l.mutate(func() ([]Event, error) {
		key := models.StockKey{ProductID: productID, Size: size}
		if err := l.checkAvailable(key, quantity); err != nil {
			return nil, err
		}
		return stockEvents(l.consume(key, quantity)), nil
	})
}

func (l *Ledger) checkAvailable(key models.StockKey, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	idx := l.stockIndex(key)
	if idx < 0 {
		return ErrStockNotFound
	}
	if l.stock[idx].AvailablePots < quantity {
		return fmt.Errorf("%w: %s %s has %d pots, %d requested",
			ErrInsufficientStock, key.ProductID, key.Size, l.stock[idx].AvailablePots, quantity)
	}
	return nil
}

// consume assumes checkAvailable passed for key and quantity.
func (l *Ledger) consume(key models.StockKey, quantity int) models.StockItem {
	item := &l.stock[l.stockIndex(key)]
	item.AvailablePots -= quantity
	if item.PotsPerPackage > 0 {
		item.Packages = item.AvailablePots / item.PotsPerPackage
	} else {
		item.Packages = 0
	}
	item.LastUpdated = l.now()
	return *item
}

func (l *Ledger) stockIndex(key models.StockKey) int {
	for i, item := range l.stock {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func stockEvents(item models.StockItem) []Event {
	updated := item
	events := []Event{{Type: EventStockUpdated, Stock: &updated}}
	if item.IsLow() {
		low := item
		events = append(events, Event{Type: EventLowStock, Stock: &low})
	}
	return events
}
