package models

import "time"

// StockItem tracks the pots available for one product size.
// AvailablePots is recomputed from Packages only on restock; consumption
// lowers AvailablePots and floors Packages from it.
type StockItem struct {
	ID             string      `json:"id"`
	ProductID      string      `json:"product_id"`
	Size           ProductSize `json:"size"`
	Packages       int         `json:"packages"`
	PotsPerPackage int         `json:"pots_per_package"`
	AvailablePots  int         `json:"available_pots"`
	MinimumLevel   int         `json:"minimum_level"`
	LastUpdated    time.Time   `json:"last_updated"`
}

type StockKey struct {
	ProductID string
	Size      ProductSize
}

func (s StockItem) Key() StockKey {
	return StockKey{ProductID: s.ProductID, Size: s.Size}
}

func (s StockItem) IsLow() bool {
	return s.AvailablePots < s.MinimumLevel
}

type StockSummary struct {
	TotalPackages int `json:"total_packages"`
	TotalPots     int `json:"total_pots"`
	LowStockCount int `json:"low_stock_count"`
}
