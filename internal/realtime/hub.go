package realtime

import (
	"encoding/json"
	"sync"

	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 事件定义 ====================

// 排班变更动作
const (
	EventAssign   = "assign"
	EventUnassign = "unassign"
	EventReport   = "report"
)

// ScheduleEvent 排班变更事件，客户端收到后重拉当前可见周
type ScheduleEvent struct {
	ShopID   int64  `json:"shop_id"`
	Date     string `json:"date"`
	HourSlot int    `json:"hour_slot"`
	Action   string `json:"action"`
}

// ==================== Hub ====================

// Hub 按店铺分发排班变更，每个连接订阅一个店铺
type Hub struct {
	mu sync.RWMutex
	// shopID -> 订阅者集合
	subscribers map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan ScheduleEvent
}

// NewHub 创建分发中心
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		events:      make(chan ScheduleEvent, 64),
	}
}

// Run 事件循环，启动时起一个 goroutine
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.subscribers[client.shopID] == nil {
				h.subscribers[client.shopID] = make(map[*Client]bool)
			}
			h.subscribers[client.shopID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.subscribers[client.shopID]; ok {
				if subs[client] {
					delete(subs, client)
					close(client.send)
					if len(subs) == 0 {
						delete(h.subscribers, client.shopID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.subscribers[event.ShopID] {
				select {
				case client.send <- payload:
				default:
					// 慢客户端直接丢弃本条，不阻塞分发
					logger.L().Debugf("订阅者写缓冲已满，丢弃事件: shop=%d", event.ShopID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish 广播一条排班变更
func (h *Hub) Publish(event ScheduleEvent) {
	select {
	case h.events <- event:
	default:
		logger.L().Warn("事件队列已满，丢弃排班变更通知")
	}
}

// SubscriberCount 某店铺当前在线订阅数，测试和监控用
func (h *Hub) SubscriberCount(shopID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[shopID])
}
