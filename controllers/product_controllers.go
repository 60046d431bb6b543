package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type ProductController struct {
	Ledger *services.Ledger
}

func NewProductController(ledger *services.Ledger) *ProductController {
	return &ProductController{Ledger: ledger}
}

type sizePriceRequest struct {
	Size  models.ProductSize `json:"size" binding:"required,product_size"`
	Price decimal.Decimal    `json:"price"`
}

type createProductRequest struct {
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	Category        models.Category    `json:"category" binding:"required,category"`
	Sizes           []sizePriceRequest `json:"sizes" binding:"required,min=1,dive"`
	Active          *bool              `json:"active"`
	TracksInventory bool               `json:"tracks_inventory"`
}

type updateProductRequest struct {
	Name            *string            `json:"name" binding:"omitempty,min=1"`
	Description     *string            `json:"description"`
	Category        *models.Category   `json:"category" binding:"omitempty,category"`
	Sizes           []sizePriceRequest `json:"sizes" binding:"omitempty,min=1,dive"`
	Active          *bool              `json:"active"`
	TracksInventory *bool              `json:"tracks_inventory"`
}

func toSizePrices(in []sizePriceRequest) []models.SizePrice {
	if in == nil {
		return nil
	}
	out := make([]models.SizePrice, len(in))
	for i, s := range in {
		out[i] = models.SizePrice{Size: s.Size, Price: s.Price}
	}
	return out
}

// GetProducts lists the catalog, optionally filtered by ?search= and ?category=.
func (pc *ProductController) GetProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Search:   c.Query("search"),
		Category: models.Category(c.Query("category")),
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		respondLedgerError(c, services.ErrInvalidProduct)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", pc.Ledger.Products(filter))
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.Ledger.GetProduct(c.Param("id"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

func (pc *ProductController) GetToppings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of toppings", pc.Ledger.Toppings())
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input createProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	product, err := pc.Ledger.AddProduct(models.Product{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Sizes:           toSizePrices(input.Sizes),
		Active:          active,
		TracksInventory: input.TracksInventory,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var input updateProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Ledger.UpdateProduct(c.Param("id"), models.ProductPatch{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Sizes:           toSizePrices(input.Sizes),
		Active:          input.Active,
		TracksInventory: input.TracksInventory,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.Ledger.DeleteProduct(c.Param("id")); err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}
