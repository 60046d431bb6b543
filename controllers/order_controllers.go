package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type OrderController struct {
	Ledger *services.Ledger
}

func NewOrderController(ledger *services.Ledger) *OrderController {
	return &OrderController{Ledger: ledger}
}

func (oc *OrderController) cartPayload() gin.H {
	return gin.H{
		"items": oc.Ledger.CurrentOrder(),
		"total": oc.Ledger.CartTotal(),
	}
}

func (oc *OrderController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current order", oc.cartPayload())
}

type addCartItemRequest struct {
	ProductID  string             `json:"product_id" binding:"required"`
	Size       models.ProductSize `json:"size" binding:"required,product_size"`
	Quantity   int                `json:"quantity" binding:"required,gt=0"`
	ToppingIDs []string           `json:"topping_ids"`
}

// AddCartItem prices the line from the catalog and checks stock for
// tracked products before adding it.
func (oc *OrderController) AddCartItem(c *gin.Context) {
	var input addCartItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Ledger.AddProductToCart(input.ProductID, input.Size, input.Quantity, input.ToppingIDs)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added", gin.H{
		"item": item,
		"cart": oc.cartPayload(),
	})
}

type updateCartItemRequest struct {
	Quantity *int                `json:"quantity"`
	Size     *models.ProductSize `json:"size" binding:"omitempty,product_size"`
	Price    *decimal.Decimal    `json:"price"`
	Toppings []models.Topping    `json:"toppings"`
}

// UpdateCartItem patches a line. A quantity of zero or less removes it.
// A size change without an explicit price takes the catalog price.
func (oc *OrderController) UpdateCartItem(c *gin.Context) {
	var input updateCartItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	id := c.Param("id")

	if input.Quantity != nil && *input.Quantity <= 0 {
		if err := oc.Ledger.RemoveFromCurrentOrder(id); err != nil {
			respondLedgerError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item removed", oc.cartPayload())
		return
	}

	patch := models.OrderItemPatch{
		Quantity: input.Quantity,
		Size:     input.Size,
		Price:    input.Price,
		Toppings: input.Toppings,
	}
	if input.Size != nil && input.Price == nil {
		price, err := oc.catalogPrice(id, *input.Size)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		patch.Price = &price
	}

	item, err := oc.Ledger.UpdateOrderItem(id, patch)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", gin.H{
		"item": item,
		"cart": oc.cartPayload(),
	})
}

func (oc *OrderController) catalogPrice(itemID string, size models.ProductSize) (decimal.Decimal, error) {
	for _, it := range oc.Ledger.CurrentOrder() {
		if it.ID != itemID {
			continue
		}
		product, err := oc.Ledger.GetProduct(it.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		price, ok := product.PriceFor(size)
		if !ok {
			return decimal.Zero, services.ErrInvalidSize
		}
		return price, nil
	}
	return decimal.Zero, services.ErrCartItemNotFound
}

func (oc *OrderController) RemoveCartItem(c *gin.Context) {
	if err := oc.Ledger.RemoveFromCurrentOrder(c.Param("id")); err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", oc.cartPayload())
}

func (oc *OrderController) ClearCart(c *gin.Context) {
	oc.Ledger.ClearCurrentOrder()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", oc.cartPayload())
}

type finalizeRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,payment_method"`
	CustomerName  string               `json:"customer_name" binding:"max=100"`
}

func (oc *OrderController) FinalizeOrder(c *gin.Context) {
	var input finalizeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Ledger.FinalizeOrder(input.PaymentMethod, input.CustomerName)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order finalized", order)
}

// GetOrders lists history, filtered by ?method= and an inclusive
// ?start=&end= range (RFC3339 or YYYY-MM-DD).
func (oc *OrderController) GetOrders(c *gin.Context) {
	loc := oc.Ledger.Location()
	start, end := c.Query("start"), c.Query("end")

	var orders []models.Order
	switch {
	case start != "" || end != "":
		if start == "" || end == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("start and end must be given together"))
			return
		}
		from, err := utils.ParseTimestamp(start, loc, false)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		to, err := utils.ParseTimestamp(end, loc, true)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		orders = oc.Ledger.OrdersInRange(from, to)
	default:
		orders = oc.Ledger.Orders()
	}

	if method := models.PaymentMethod(c.Query("method")); method != "" {
		if !method.IsValid() {
			respondLedgerError(c, services.ErrInvalidPaymentMethod)
			return
		}
		orders = filterByMethod(orders, method)
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.Ledger.GetOrder(c.Param("id"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func filterByMethod(orders []models.Order, method models.PaymentMethod) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if o.PaymentMethod == method {
			out = append(out, o)
		}
	}
	return out
}
