package services

import (
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/kds"
	"github.com/yeremiapane/acai-pdv/metrics"
	"github.com/yeremiapane/acai-pdv/utils"
	"go.uber.org/multierr"
)

// HubListener forwards ledger events to the connected displays.
func HubListener(hub *kds.Hub) Listener {
	return func(ev Event) {
		switch ev.Type {
		case EventOrderFinalized:
			hub.BroadcastOrderFinalized(*ev.Order)
		case EventStockUpdated:
			hub.BroadcastStockUpdate(*ev.Stock)
		case EventLowStock:
			hub.BroadcastLowStock(*ev.Stock)
		case EventProductAdded, EventProductUpdated:
			hub.BroadcastCatalogUpdate(*ev.Product)
		case EventProductDeleted:
			hub.Broadcast(kds.Message{Event: kds.EventCatalogUpdate, Data: map[string]interface{}{
				"id":      ev.Product.ID,
				"deleted": true,
			}})
		}
	}
}

// MetricsListener records checkout and stock activity.
func MetricsListener(m *metrics.LedgerMetrics) Listener {
	return func(ev Event) {
		switch ev.Type {
		case EventOrderFinalized:
			total, _ := ev.Order.Total.Float64()
			m.ObserveOrder(string(ev.Order.PaymentMethod), total)
		case EventFinalizeRejected:
			m.IncRejected(ev.Reason)
		case EventStockUpdated:
			m.SetAvailablePots(ev.Stock.ProductID, string(ev.Stock.Size), ev.Stock.AvailablePots)
		}
	}
}

// LogListener writes one structured line per significant event.
func LogListener() Listener {
	return func(ev Event) {
		switch ev.Type {
		case EventOrderFinalized:
			utils.InfoLogger.WithFields(logrus.Fields{
				"order_id": ev.Order.ID,
				"total":    ev.Order.Total.StringFixed(2),
				"method":   ev.Order.PaymentMethod,
				"cashier":  ev.Order.CashierID,
				"items":    len(ev.Order.Items),
			}).Info("Order finalized")
		case EventFinalizeRejected:
			fields := logrus.Fields{"reason": ev.Reason}
			if ev.Reason == ReasonInsufficientStock {
				fields["shortages"] = len(multierr.Errors(ev.Err))
			}
			utils.InfoLogger.WithFields(fields).WithError(ev.Err).Warn("Finalize rejected")
		case EventLowStock:
			utils.InfoLogger.WithFields(logrus.Fields{
				"product_id": ev.Stock.ProductID,
				"size":       ev.Stock.Size,
				"available":  ev.Stock.AvailablePots,
				"minimum":    ev.Stock.MinimumLevel,
			}).Warn("Stock below minimum level")
		}
	}
}
