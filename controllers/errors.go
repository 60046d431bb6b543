package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

// respondLedgerError maps ledger and auth failures onto HTTP statuses.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientStock):
		details := make([]string, 0)
		for _, e := range services.Shortages(err) {
			details = append(details, e.Error())
		}
		utils.RespondJSON(c, http.StatusConflict, services.ErrInsufficientStock.Error(), gin.H{"shortages": details})
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrStockNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrStockExists):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidSize),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrInvalidView):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated),
		errors.Is(err, services.ErrNoCashier):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrViewForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.RespondError(c, http.StatusRequestTimeout, errors.New("request cancelled"))
	default:
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("unexpected ledger error")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
