package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-chain/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler 每个固定刻之后推送一份快照；客户端发送 up/down/left/right 或 restart
func StreamHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, g, ok := lookup(c, reg)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade for %s: %v", id, err)
			return
		}
		defer conn.Close()

		frames, cancel := g.Subscribe()
		defer cancel()

		if err := conn.WriteJSON(g.Frame()); err != nil {
			return
		}

		// 读循环只处理输入，写只在本 goroutine 中进行
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				msgType, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				if msgType != websocket.TextMessage {
					continue
				}
				if err := handleMessage(id, g, string(msg)); err != nil {
					log.Printf("session %s: ignoring message: %v", id, err)
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case f, ok := <-frames:
				if !ok {
					return
				}
				if err := conn.WriteJSON(f); err != nil {
					return
				}
			}
		}
	}
}
