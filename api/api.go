package api

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoshinonyaruko/snake-chain/config"
	"github.com/hoshinonyaruko/snake-chain/game"
	"github.com/hoshinonyaruko/snake-chain/memimg"
	"github.com/hoshinonyaruko/snake-chain/render"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

// maxImageSize 客户端可请求的最大边长
const maxImageSize = 2048

// Router 注册所有路由，staticDir 为渲染图片的保存目录
func Router(reg *game.Registry, staticDir string) *gin.Engine {
	router := gin.Default()
	// 新开一局
	router.GET("/new-session", NewSessionHandler(reg))
	// 处理玩家改变方向
	router.GET("/update-direction", UpdateDirection(reg))
	// 当前状态
	router.GET("/state", StateHandler(reg))
	// 渲染函数 返回静态地址
	router.GET("/render-map", RenderMapHandler(reg, staticDir))
	// 直接返回最近一次渲染的图片
	router.GET("/frame.png", FrameHandler(reg))
	// 重开
	router.GET("/restart", RestartHandler(reg))
	// 删除地图
	router.GET("/delete-map", DeleteMapHandler(reg))
	// 推送每一刻的快照，接收方向
	router.GET("/ws", StreamHandler(reg))
	router.Static("/static", staticDir) // 静态文件服务
	return router
}

// lookup 读取 session 参数并找到对局，失败时已经写好响应
func lookup(c *gin.Context, reg *game.Registry) (string, *game.Game, bool) {
	id, ok := sessionParam(c)
	if !ok {
		return "", nil, false
	}
	g, err := reg.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return "", nil, false
	}
	return id, g, true
}

// sessionParam 读取 session 参数，缺失时写好 400
func sessionParam(c *gin.Context) (string, bool) {
	id := c.Query("session")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: session"})
		return "", false
	}
	return id, true
}

func NewSessionHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, g := reg.Create()
		c.JSON(http.StatusOK, gin.H{"session_id": id, "frame": g.Frame()})
	}
}

func UpdateDirection(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		newDirection := c.Query("direction")
		if c.Query("session") == "" || newDirection == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameters: session or direction"})
			return
		}

		d, err := structs.ParseDirection(strings.ToLower(newDirection))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		_, g, ok := lookup(c, reg)
		if !ok {
			return
		}
		// 掉头的请求在下一帧被拒绝
		g.Press(d)
		c.JSON(http.StatusOK, gin.H{"message": "Direction queued", "direction": d})
	}
}

func StateHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, g, ok := lookup(c, reg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, g.Frame())
	}
}

func RenderMapHandler(reg *game.Registry, staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		size, err := strconv.Atoi(c.DefaultQuery("size", "0"))
		if err != nil || size < 0 || size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("size must be between 0 and %d", maxImageSize)})
			return
		}
		id, g, ok := lookup(c, reg)
		if !ok {
			return
		}
		// 文件名只用解析后的 uuid，不直接拼接客户端的输入
		parsed, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session is not a valid id"})
			return
		}
		name := parsed.String()

		frame := g.Frame()
		img := render.Scale(render.Frame(frame, config.GetConfigValue("blocksize").(int)), size)
		memimg.Store(id, frame.Ticks, img)

		fileName := filepath.Join(staticDir, name+".png")
		if err := render.SavePNG(img, fileName); err != nil {
			log.Printf("save %s: %v", fileName, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save image"})
			return
		}

		imageUrl := fmt.Sprintf("%s/static/%s.png", strings.TrimRight(config.GetConfigValue("selfpath").(string), "/"), name)
		c.JSON(http.StatusOK, gin.H{"image_url": imageUrl, "ticks": frame.Ticks, "over": frame.Over})
	}
}

func FrameHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, g, ok := lookup(c, reg)
		if !ok {
			return
		}
		frame := g.Frame()
		img, ticks, found := memimg.GetFrameFromMemory(id)
		// 缓存落后于对局时重新绘制
		if !found || ticks != frame.Ticks {
			img = render.Frame(frame, config.GetConfigValue("blocksize").(int))
			memimg.Store(id, frame.Ticks, img)
		}
		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := render.EncodePNG(c.Writer, img); err != nil {
			log.Printf("encode frame for %s: %v", id, err)
		}
	}
}

func RestartHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, g, ok := lookup(c, reg)
		if !ok {
			return
		}
		g.Restart()
		memimg.Delete(id)
		c.JSON(http.StatusOK, g.Frame())
	}
}

func DeleteMapHandler(reg *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionParam(c)
		if !ok {
			return
		}
		if !reg.Delete(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": game.ErrNoSession.Error()})
			return
		}
		memimg.Delete(id)
		c.JSON(http.StatusOK, gin.H{"message": "Map deleted successfully"})
	}
}

// handleMessage 处理客户端发来的一条文本
func handleMessage(id string, g *game.Game, msg string) error {
	msg = strings.ToLower(strings.TrimSpace(msg))
	if msg == "restart" {
		g.Restart()
		memimg.Delete(id)
		return nil
	}
	d, err := structs.ParseDirection(msg)
	if err != nil {
		return err
	}
	g.Press(d)
	return nil
}
