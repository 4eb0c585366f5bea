package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ==================== 测试辅助 ====================

func waitSubscribers(t *testing.T, hub *Hub, shopID int64, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(shopID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("订阅数未达到 %d, 当前 %d", want, hub.SubscriberCount(shopID))
}

// ==================== 单元测试 ====================

func TestPublish_NeverBlocks(t *testing.T) {
	hub := NewHub() // 不启动事件循环

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(ScheduleEvent{ShopID: 1, Date: "2026-08-24", HourSlot: i % 24, Action: EventAssign})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish 在队列满时阻塞了")
	}
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, shopID: 7, send: make(chan []byte, 16)}
	other := &Client{hub: hub, shopID: 8, send: make(chan []byte, 16)}
	hub.register <- client
	hub.register <- other
	waitSubscribers(t, hub, 7, 1)
	waitSubscribers(t, hub, 8, 1)

	hub.Publish(ScheduleEvent{ShopID: 7, Date: "2026-08-24", HourSlot: 10, Action: EventAssign})

	select {
	case payload := <-client.send:
		var ev ScheduleEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("载荷不是合法 JSON: %v", err)
		}
		if ev.ShopID != 7 || ev.HourSlot != 10 || ev.Action != EventAssign {
			t.Errorf("事件内容错误: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("订阅者未收到事件")
	}

	// 其他店铺的订阅者不应收到
	select {
	case <-other.send:
		t.Errorf("事件串台到别的店铺")
	case <-time.After(50 * time.Millisecond):
	}

	hub.unregister <- client
	waitSubscribers(t, hub, 7, 0)
	if _, ok := <-client.send; ok {
		t.Errorf("注销后 send 通道应关闭")
	}
}

func TestServeWS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	r := gin.New()
	r.GET("/ws/schedule", ServeWS(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	// 缺 shop_id 拒绝升级
	if resp, err := http.Get(srv.URL + "/ws/schedule"); err == nil {
		if resp.StatusCode != 400 {
			t.Errorf("缺 shop_id: code = %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws/schedule?shop_id=3", nil)
	if err != nil {
		t.Fatalf("连接失败: %v", err)
	}
	defer conn.Close()
	waitSubscribers(t, hub, 3, 1)

	hub.Publish(ScheduleEvent{ShopID: 3, Date: "2026-08-25", HourSlot: 21, Action: EventReport})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("读取事件失败: %v", err)
	}
	var ev ScheduleEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		t.Fatalf("载荷解析失败: %v", err)
	}
	if ev.ShopID != 3 || ev.Action != EventReport {
		t.Errorf("事件内容错误: %+v", ev)
	}
}
