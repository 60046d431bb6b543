package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/utils"
)

// StockMonitor periodically re-announces stock levels so displays that
// connect late still see low-stock alerts, and keeps gauges current after
// a restore.
type StockMonitor struct {
	Ledger   *Ledger
	Interval time.Duration
	OnLow    func(models.StockItem)
	OnLevel  func(models.StockItem)
	StopChan chan struct{}
}

func NewStockMonitor(ledger *Ledger) *StockMonitor {
	return &StockMonitor{
		Ledger:   ledger,
		Interval: time.Minute,
		StopChan: make(chan struct{}),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		sm.check()
		for {
			select {
			case <-ticker.C:
				sm.check()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

// check returns the number of records below their minimum level.
func (sm *StockMonitor) check() int {
	low := 0
	for _, item := range sm.Ledger.Stock() {
		if sm.OnLevel != nil {
			sm.OnLevel(item)
		}
		if !item.IsLow() {
			continue
		}
		low++
		if sm.OnLow != nil {
			sm.OnLow(item)
		}
	}
	if low > 0 {
		utils.InfoLogger.WithFields(logrus.Fields{"low_stock": low}).Debug("Stock check")
	}
	return low
}
