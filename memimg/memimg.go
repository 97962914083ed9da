// Package memimg 在内存中保存每局最近一次渲染的图片，加速读取
package memimg

import (
	"image"
	"sync"
)

type entry struct {
	img   image.Image
	ticks uint64
}

var (
	frames      = make(map[string]entry)
	framesMutex sync.RWMutex
)

// Store 保存某局在第 ticks 刻渲染的图片
func Store(key string, ticks uint64, img image.Image) {
	framesMutex.Lock()
	frames[key] = entry{img: img, ticks: ticks}
	framesMutex.Unlock()
}

// GetFrameFromMemory 返回图片和它对应的刻数
func GetFrameFromMemory(key string) (image.Image, uint64, bool) {
	framesMutex.RLock()
	e, exists := frames[key]
	framesMutex.RUnlock()
	return e.img, e.ticks, exists
}

func Delete(key string) {
	framesMutex.Lock()
	delete(frames, key)
	framesMutex.Unlock()
}
