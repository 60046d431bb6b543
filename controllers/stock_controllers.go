package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type StockController struct {
	Ledger *services.Ledger
}

func NewStockController(ledger *services.Ledger) *StockController {
	return &StockController{Ledger: ledger}
}

func (sc *StockController) GetStock(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Stock levels", sc.Ledger.Stock())
}

func (sc *StockController) GetLowStock(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Low stock items", sc.Ledger.LowStock())
}

func (sc *StockController) GetSummary(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Stock summary", sc.Ledger.StockSummary())
}

func (sc *StockController) GetStockItem(c *gin.Context) {
	item, ok := sc.Ledger.GetStockByKey(c.Param("product_id"), models.ProductSize(c.Param("size")))
	if !ok {
		respondLedgerError(c, services.ErrStockNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock item", item)
}

type createStockRequest struct {
	ProductID      string             `json:"product_id" binding:"required"`
	Size           models.ProductSize `json:"size" binding:"required,product_size"`
	Packages       int                `json:"packages" binding:"min=0"`
	PotsPerPackage int                `json:"pots_per_package" binding:"required,gt=0"`
	MinimumLevel   int                `json:"minimum_level" binding:"min=0"`
}

func (sc *StockController) CreateStockItem(c *gin.Context) {
	var input createStockRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := sc.Ledger.AddStockItem(models.StockItem{
		ProductID:      input.ProductID,
		Size:           input.Size,
		Packages:       input.Packages,
		PotsPerPackage: input.PotsPerPackage,
		MinimumLevel:   input.MinimumLevel,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Stock item created", item)
}

type setPackagesRequest struct {
	Packages *int `json:"packages" binding:"required,min=0"`
}

// SetPackages replaces the package count after a restock or recount.
func (sc *StockController) SetPackages(c *gin.Context) {
	var input setPackagesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	productID, size := c.Param("product_id"), models.ProductSize(c.Param("size"))
	if err := sc.Ledger.SetStockPackages(productID, size, *input.Packages); err != nil {
		respondLedgerError(c, err)
		return
	}
	item, _ := sc.Ledger.GetStockByKey(productID, size)
	utils.RespondJSON(c, http.StatusOK, "Stock updated", item)
}
