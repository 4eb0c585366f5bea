package realtime

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"liveops_dev_v1_202608/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 前端和 API 不同源，放开 Origin 检查，鉴权走 JWT 中间件
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client 一条 WebSocket 连接，绑定一个店铺
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	shopID int64
	send   chan []byte
}

// ServeWS 升级连接并订阅 shop_id 对应的排班频道
// GET /api/schedules/ws?shop_id=1
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
		if err != nil || shopID <= 0 {
			c.JSON(400, gin.H{"code": 400, "message": "无效的 shop_id"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.L().Warnf("WebSocket 升级失败: %v", err)
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			shopID: shopID,
			send:   make(chan []byte, 16),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump 只消费 pong 和关闭帧，客户端不上行业务数据
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
