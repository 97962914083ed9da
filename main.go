package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoshinonyaruko/snake-chain/api"
	"github.com/hoshinonyaruko/snake-chain/config"
	"github.com/hoshinonyaruko/snake-chain/game"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

const configPath = "./config.json"

func main() {
	EnsureFoldersExist()
	// Initialize the configuration
	config.LoadConfig(configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 检测并热更新配置 场地参数在新开的对局生效 刻间隔和帧率下一刻生效
	go func() {
		if err := config.WatchConfig(configPath, ctx.Done()); err != nil {
			log.Printf("config watcher stopped: %v", err)
		}
	}()

	reg := game.NewRegistry(newGame)

	driver := &game.Driver{
		Registry: reg,
		Tick:     config.TickInterval(),
		Frame:    config.FrameInterval(),
		OnEvents: func(id string, events []structs.Event) {
			for _, ev := range events {
				if ev.Kind == structs.FruitSpawned {
					log.Printf("session %s: fruit at (%.0f, %.0f)", id, ev.Position.X, ev.Position.Y)
				}
			}
		},
	}
	driver.Interval = func() (time.Duration, time.Duration) {
		return config.TickInterval(), config.FrameInterval()
	}
	go driver.Run(ctx)

	router := api.Router(reg, "./static")
	// 从配置单例读取端口 监听
	srv := &http.Server{
		Addr:    ":" + config.GetConfigValue("port").(string),
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
}

// newGame 按当前配置新开一局
func newGame() *game.Game {
	return game.New(config.Field(), game.Options{
		InitialLength: config.GetConfigValue("initiallength").(int),
		Seed:          config.GetConfigValue("seed").(uint64),
	})
}

// EnsureFoldersExists 检查并创建必需的文件夹
func EnsureFoldersExist() {
	folders := []string{"static"}

	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			err := os.Mkdir(folder, 0755) // 使用0755权限以确保读写权限
			if err != nil {
				// 如果创建失败，则记录错误并可能退出程序
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		} else {
			// 文件夹已存在
			log.Printf("%s directory already exists", folder)
		}
	}
}
