package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath      string  `json:"selfpath"`
	Port          string  `json:"port"`
	Blocksize     int     `json:"blocksize"`     // 绘图时每个格子的像素
	CellSize      float64 `json:"cellsize"`      // 每个格子的世界单位
	Range         int     `json:"range"`         // 场地半宽，单位为格子
	TickInterval  int     `json:"tickinterval"`  // 固定刻间隔，毫秒
	FrameRate     int     `json:"framerate"`     // 每秒帧数
	InitialLength int     `json:"initiallength"` // 开局蛇长
	Seed          uint64  `json:"seed"`          // 0 表示按时间取种子
}

var (
	instance *AppConfig
	once     sync.Once
	mu       sync.RWMutex
)

func defaults() *AppConfig {
	return &AppConfig{
		SelfPath:      "http://www.example.com", // Default value
		Port:          "38870",                  // Default value
		Blocksize:     20,
		CellSize:      structs.DefaultField.CellSize,
		Range:         structs.DefaultField.Range,
		TickInterval:  500,
		FrameRate:     60,
		InitialLength: 3,
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		instance = defaults()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			saveConfig(filePath)
		} else {
			loadConfig(filePath)
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// loadConfig loads the settings from the file
func loadConfig(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(instance); err != nil {
		panic(err)
	}
	if err := instance.validate(); err != nil {
		log.Printf("%v, using default field", err)
		instance.CellSize = structs.DefaultField.CellSize
		instance.Range = structs.DefaultField.Range
	}
}

// validate 检查场地参数
func (c *AppConfig) validate() error {
	field := structs.Field{CellSize: c.CellSize, Range: c.Range}
	if !field.Valid() {
		return fmt.Errorf("invalid field: cellsize %v must be > 0 and range %d must be >= 0", c.CellSize, c.Range)
	}
	return nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string) {
	file, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(instance); err != nil {
		panic(err)
	}
}

// Reload 重新读取配置文件，解析失败或场地参数无效时保留旧值
func Reload(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	next := defaults()
	if err := json.Unmarshal(data, next); err != nil {
		return err
	}
	if err := next.validate(); err != nil {
		return err
	}
	mu.Lock()
	instance = next
	mu.Unlock()
	return nil
}

// WatchConfig 监听配置文件，写入或重建后热更新到内存。场地参数在新开的对局生效，
// 刻间隔和帧率由 game.Driver 在下一个固定刻重新读取。
func WatchConfig(filePath string, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// 监听目录而不是文件，编辑器保存时常常是先删除再创建
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}
	target := filepath.Clean(filePath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := Reload(filePath); err != nil {
					log.Printf("config reload failed: %v", err)
					continue
				}
				log.Printf("config reloaded from %s", filePath)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("config watcher error:", err)
		case <-done:
			return nil
		}
	}
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	mu.RLock()
	cfg := instance
	mu.RUnlock()
	if cfg == nil {
		cfg = defaults()
	}
	switch key {
	case "selfpath":
		return cfg.SelfPath
	case "port":
		return cfg.Port
	case "blocksize":
		return cfg.Blocksize
	case "cellsize":
		return cfg.CellSize
	case "range":
		return cfg.Range
	case "tickinterval":
		return cfg.TickInterval
	case "framerate":
		return cfg.FrameRate
	case "initiallength":
		return cfg.InitialLength
	case "seed":
		return cfg.Seed
	default:
		return ""
	}
}

// Field 按当前配置构造场地
func Field() structs.Field {
	return structs.Field{
		CellSize: GetConfigValue("cellsize").(float64),
		Range:    GetConfigValue("range").(int),
	}
}

// TickInterval 固定刻间隔
func TickInterval() time.Duration {
	return time.Duration(GetConfigValue("tickinterval").(int)) * time.Millisecond
}

// FrameInterval 每帧间隔
func FrameInterval() time.Duration {
	rate := GetConfigValue("framerate").(int)
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
