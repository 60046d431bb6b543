package services

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/acai-pdv/models"
)

const (
	defaultPotsPerPackage = 25
	defaultMinimumLevel   = 10
)

// DefaultAccounts are the operators that may sign in with the shared password.
func DefaultAccounts() []models.User {
	return []models.User{
		{ID: "1", Name: "João Silva", Email: "admin@acaishop.com", Role: models.RoleAdmin},
		{ID: "2", Name: "Maria Santos", Email: "funcionario@acaishop.com", Role: models.RoleEmployee},
	}
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// SeedSnapshot is the state of a fresh install: the house catalog and one
// stock record per açaí size.
func SeedSnapshot(now time.Time) models.LedgerSnapshot {
	products := []models.Product{
		{
			ID: "1", Name: "Açaí Tradicional", Description: "Açaí puro batido na hora",
			Category: models.CategoryAcai, TracksInventory: true,
			Sizes: []models.SizePrice{
				{Size: models.SizePP, Price: price("8.00")},
				{Size: models.SizeP, Price: price("12.00")},
				{Size: models.SizeM, Price: price("16.00")},
				{Size: models.SizeG, Price: price("22.00")},
			},
		},
		{
			ID: "2", Name: "Granola", Description: "Granola crocante",
			Category: models.CategoryTopping,
			Sizes:    []models.SizePrice{{Size: models.SizeP, Price: price("2.50")}},
		},
		{
			ID: "3", Name: "Banana", Description: "Banana fatiada",
			Category: models.CategoryTopping,
			Sizes:    []models.SizePrice{{Size: models.SizeP, Price: price("1.50")}},
		},
		{
			ID: "4", Name: "Leite Condensado", Description: "Leite condensado cremoso",
			Category: models.CategoryTopping,
			Sizes:    []models.SizePrice{{Size: models.SizeP, Price: price("2.00")}},
		},
		{
			ID: "5", Name: "Suco de Laranja", Description: "Suco natural de laranja",
			Category: models.CategoryDrinks,
			Sizes: []models.SizePrice{
				{Size: models.SizeP, Price: price("4.00")},
				{Size: models.SizeM, Price: price("6.00")},
				{Size: models.SizeG, Price: price("8.00")},
			},
		},
		{
			ID: "6", Name: "Água Mineral", Description: "Água mineral 500ml",
			Category: models.CategoryDrinks,
			Sizes:    []models.SizePrice{{Size: models.SizeP, Price: price("2.50")}},
		},
		{
			ID: "7", Name: "Guardanapo", Description: "Guardanapo descartável",
			Category: models.CategoryOther,
			Sizes:    []models.SizePrice{{Size: models.SizeP, Price: price("0.50")}},
		},
	}
	for i := range products {
		products[i].Active = true
		products[i].CreatedAt = now
	}

	packages := map[models.ProductSize]int{models.SizePP: 4, models.SizeP: 3, models.SizeM: 2, models.SizeG: 1}
	stock := make([]models.StockItem, 0, len(models.ProductSizes))
	for i, size := range models.ProductSizes {
		stock = append(stock, models.StockItem{
			ID:             strconv.Itoa(i + 1),
			ProductID:      "1",
			Size:           size,
			Packages:       packages[size],
			PotsPerPackage: defaultPotsPerPackage,
			AvailablePots:  packages[size] * defaultPotsPerPackage,
			MinimumLevel:   defaultMinimumLevel,
			LastUpdated:    now,
		})
	}

	return models.LedgerSnapshot{
		Products:    products,
		Stock:       stock,
		Orders:      []models.Order{},
		CurrentView: models.ViewLogin,
	}
}
