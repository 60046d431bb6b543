package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/utils"
)

// Event types
const (
	EventOrderFinalized = "order_finalized"
	EventStockUpdate    = "stock_updated"
	EventLowStock       = "low_stock"
	EventCatalogUpdate  = "catalog_updated"
)

// writeWait bounds each write so a stalled display cannot hold up a broadcast.
var writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the connected counter and back-office displays.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) RegisterClient(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastOrderFinalized(order models.Order) {
	h.Broadcast(Message{Event: EventOrderFinalized, Data: order})
}

func (h *Hub) BroadcastStockUpdate(item models.StockItem) {
	h.Broadcast(Message{Event: EventStockUpdate, Data: item})
}

func (h *Hub) BroadcastLowStock(item models.StockItem) {
	h.Broadcast(Message{Event: EventLowStock, Data: item})
}

func (h *Hub) BroadcastCatalogUpdate(product models.Product) {
	h.Broadcast(Message{Event: EventCatalogUpdate, Data: product})
}

// Broadcast writes msg to every client; clients that fail the write are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("marshal hub message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		err := conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, data)
		}
		if err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"event": msg.Event,
				"role":  role,
			}).WithError(err).Warn("dropping display client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
