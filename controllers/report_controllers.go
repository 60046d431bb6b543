package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type ReportController struct {
	Ledger *services.Ledger
}

func NewReportController(ledger *services.Ledger) *ReportController {
	return &ReportController{Ledger: ledger}
}

func (rc *ReportController) GetDailySales(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"), rc.Ledger.Location())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily sales", gin.H{
		"date":   date.Format(utils.DateLayout),
		"orders": rc.Ledger.DailySales(date),
		"total":  rc.Ledger.DailyTotal(date),
	})
}

func (rc *ReportController) GetDailySummary(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"), rc.Ledger.Location())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily summary", rc.Ledger.DailySummary(date))
}

// ExportDaily downloads the day's orders as ?format=csv (default) or pdf,
// optionally restricted to one ?method=.
func (rc *ReportController) ExportDaily(c *gin.Context) {
	loc := rc.Ledger.Location()
	date, err := utils.ParseDate(c.Query("date"), loc)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders := rc.Ledger.DailySales(date)
	if method := models.PaymentMethod(c.Query("method")); method != "" {
		if !method.IsValid() {
			respondLedgerError(c, services.ErrInvalidPaymentMethod)
			return
		}
		orders = filterByMethod(orders, method)
	}

	format := c.DefaultQuery("format", "csv")
	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		err = services.ExportOrdersCSV(&buf, orders, loc)
	case "pdf":
		contentType = "application/pdf"
		title := fmt.Sprintf("Relatório de Vendas %s", date.Format("02/01/2006"))
		err = services.ExportOrdersPDF(&buf, title, orders, loc)
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("format must be csv or pdf"))
		return
	}
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("format", format).Error("report export failed")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not build report"))
		return
	}

	filename := services.ExportFilename(date, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
