package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/acai-pdv/controllers"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

var testDay = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupLedger(t *testing.T) *services.Ledger {
	t.Helper()
	ledger := services.NewLedger(
		services.WithClock(func() time.Time { return testDay }),
		services.WithLocation(time.UTC),
	)
	ledger.Restore(services.SeedSnapshot(testDay))
	ledger.Login(services.DefaultAccounts()[1])
	return ledger
}

func setupRouter(t *testing.T, ledger *services.Ledger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidations())

	r := gin.New()
	productCtrl := controllers.NewProductController(ledger)
	stockCtrl := controllers.NewStockController(ledger)
	orderCtrl := controllers.NewOrderController(ledger)
	reportCtrl := controllers.NewReportController(ledger)

	r.GET("/products", productCtrl.GetProducts)
	r.GET("/products/:id", productCtrl.GetProduct)
	r.POST("/products", productCtrl.CreateProduct)
	r.PATCH("/products/:id", productCtrl.UpdateProduct)
	r.DELETE("/products/:id", productCtrl.DeleteProduct)
	r.GET("/toppings", productCtrl.GetToppings)

	r.GET("/stock", stockCtrl.GetStock)
	r.GET("/stock/summary", stockCtrl.GetSummary)
	r.GET("/stock/:product_id/:size", stockCtrl.GetStockItem)
	r.PUT("/stock/:product_id/:size", stockCtrl.SetPackages)
	r.POST("/stock", stockCtrl.CreateStockItem)

	r.GET("/cart", orderCtrl.GetCart)
	r.POST("/cart/items", orderCtrl.AddCartItem)
	r.PATCH("/cart/items/:id", orderCtrl.UpdateCartItem)
	r.DELETE("/cart/items/:id", orderCtrl.RemoveCartItem)
	r.DELETE("/cart", orderCtrl.ClearCart)
	r.POST("/orders/finalize", orderCtrl.FinalizeOrder)
	r.GET("/orders", orderCtrl.GetOrders)
	r.GET("/orders/:id", orderCtrl.GetOrder)

	r.GET("/reports/daily", reportCtrl.GetDailySales)
	r.GET("/reports/daily/summary", reportCtrl.GetDailySummary)
	r.GET("/reports/export", reportCtrl.ExportDaily)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestGetProductsFilters(t *testing.T) {
	r := setupRouter(t, setupLedger(t))

	w, env := doJSON(t, r, http.MethodGet, "/products?category=bebidas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 2)

	w, _ = doJSON(t, r, http.MethodGet, "/products?category=sobremesa", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/products/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUpdateDeleteProduct(t *testing.T) {
	r := setupRouter(t, setupLedger(t))

	w, env := doJSON(t, r, http.MethodPost, "/products", map[string]interface{}{
		"name":     "Morango",
		"category": "cobertura",
		"sizes":    []map[string]interface{}{{"size": "P", "price": "3.00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.Active)

	w, _ = doJSON(t, r, http.MethodPost, "/products", map[string]interface{}{
		"name":     "Invalido",
		"category": "cobertura",
		"sizes":    []map[string]interface{}{{"size": "XL", "price": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodPatch, "/products/"+created.ID, map[string]interface{}{"name": "Morango Fresco"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Morango Fresco", updated.Name)

	w, _ = doJSON(t, r, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockEndpoints(t *testing.T) {
	r := setupRouter(t, setupLedger(t))

	w, env := doJSON(t, r, http.MethodPut, "/stock/1/M", map[string]int{"packages": 6})
	require.Equal(t, http.StatusOK, w.Code)
	var item models.StockItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 150, item.AvailablePots)

	w, _ = doJSON(t, r, http.MethodPut, "/stock/1/M", map[string]int{"packages": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/stock/9/M", map[string]int{"packages": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/stock/1/XL", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/stock/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum models.StockSummary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, 100+75+150+25, sum.TotalPots)

	w, _ = doJSON(t, r, http.MethodPost, "/stock", map[string]interface{}{
		"product_id": "1", "size": "M", "packages": 1, "pots_per_package": 25,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartAndFinalizeFlow(t *testing.T) {
	ledger := setupLedger(t)
	r := setupRouter(t, ledger)

	w, env := doJSON(t, r, http.MethodPost, "/cart/items", map[string]interface{}{
		"product_id": "1", "size": "M", "quantity": 2, "topping_ids": []string{"2"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added struct {
		Item models.OrderItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &added))

	w, _ = doJSON(t, r, http.MethodPost, "/orders/finalize", map[string]string{"payment_method": "boleto"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/orders/finalize", map[string]string{
		"payment_method": "pix", "customer_name": "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "37", order.Total.String())
	assert.Equal(t, "Ana", order.CustomerName)

	w, _ = doJSON(t, r, http.MethodPost, "/orders/finalize", map[string]string{"payment_method": "pix"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/orders?method=pix", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Len(t, orders, 1)

	w, env = doJSON(t, r, http.MethodGet, "/orders?start=2024-03-16&end=2024-03-17", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Empty(t, orders)

	w, _ = doJSON(t, r, http.MethodGet, "/orders?start=2024-03-16", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinalizeShortageReturnsConflict(t *testing.T) {
	ledger := setupLedger(t)
	r := setupRouter(t, ledger)

	_, err := ledger.AddToCurrentOrder(models.OrderItem{ProductID: "1", Size: models.SizeG, Price: decimal.RequireFromString("22.00"), Quantity: 30})
	require.NoError(t, err)

	w, env := doJSON(t, r, http.MethodPost, "/orders/finalize", map[string]string{"payment_method": "dinheiro"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "insufficient stock", env.Message)

	var data struct {
		Shortages []string `json:"shortages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Shortages, 1)

	item, _ := ledger.GetStockByKey("1", models.SizeG)
	assert.Equal(t, 25, item.AvailablePots)
}

func TestUpdateCartItem(t *testing.T) {
	ledger := setupLedger(t)
	r := setupRouter(t, ledger)

	item, err := ledger.AddProductToCart("1", models.SizeP, 1, nil)
	require.NoError(t, err)

	w, env := doJSON(t, r, http.MethodPatch, "/cart/items/"+item.ID, map[string]interface{}{"size": "G", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Item models.OrderItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "22", resp.Item.Price.String())
	assert.Equal(t, 2, resp.Item.Quantity)

	w, _ = doJSON(t, r, http.MethodPatch, "/cart/items/"+item.ID, map[string]interface{}{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ledger.CurrentOrder())

	w, _ = doJSON(t, r, http.MethodDelete, "/cart/items/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReports(t *testing.T) {
	ledger := setupLedger(t)
	r := setupRouter(t, ledger)

	_, err := ledger.AddProductToCart("6", models.SizeP, 4, nil)
	require.NoError(t, err)
	_, err = ledger.FinalizeOrder(models.PaymentCash, "")
	require.NoError(t, err)

	w, env := doJSON(t, r, http.MethodGet, "/reports/daily?date=2024-03-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var daily struct {
		Orders []models.Order `json:"orders"`
		Total  string         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &daily))
	assert.Len(t, daily.Orders, 1)
	assert.Equal(t, "10", daily.Total)

	w, _ = doJSON(t, r, http.MethodGet, "/reports/daily?date=15-03-2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/reports/daily/summary?date=2024-03-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.DailySummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.TotalOrders)

	w, _ = doJSON(t, r, http.MethodGet, "/reports/export?date=2024-03-15&format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio-2024-03-15.csv")
	assert.Contains(t, w.Body.String(), "R$ 10.00")
	assert.Contains(t, w.Body.String(), "DINHEIRO")

	w, _ = doJSON(t, r, http.MethodGet, "/reports/export?date=2024-03-15&format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w, _ = doJSON(t, r, http.MethodGet, "/reports/export?format=xls", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
