// Package render 把快照画成图片：蛇身为方块，食物为圆，外加场地边框
package render

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

// CanvasSize 画布边长（像素）
func CanvasSize(field structs.Field, blockSize int) int {
	return (2*field.Range + 1) * blockSize
}

// toCanvas 世界坐标转画布坐标（格子中心），画布 y 轴向下
func toCanvas(field structs.Field, blockSize int, p structs.Vec2) (float64, float64) {
	b := float64(blockSize)
	r := float64(field.Range)
	x := (p.X/field.CellSize + r + 0.5) * b
	y := (r - p.Y/field.CellSize + 0.5) * b
	return x, y
}

// Frame 渲染一帧
func Frame(f structs.Frame, blockSize int) image.Image {
	size := CanvasSize(f.Field, blockSize)
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	renderGrid(dc, size, blockSize)

	b := float64(blockSize)
	for i, pos := range f.Segments {
		x, y := toCanvas(f.Field, blockSize, pos)
		if i == 0 {
			dc.SetRGB(0, 0.5, 0)
		} else {
			dc.SetRGB(0.2, 0.8, 0.2)
		}
		dc.DrawRectangle(x-b/2, y-b/2, b, b)
		dc.Fill()
	}

	if f.Fruit != nil {
		x, y := toCanvas(f.Field, blockSize, *f.Fruit)
		dc.SetRGB(0.9, 0.1, 0.1)
		dc.DrawCircle(x, y, b*0.4)
		dc.Fill()
	}

	// 场地边框
	dc.SetRGB(0, 0, 1)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, float64(size)-2, float64(size)-2)
	dc.Stroke()

	if f.Over {
		dc.SetRGBA(0, 0, 0, 0.35)
		dc.DrawRectangle(0, 0, float64(size), float64(size))
		dc.Fill()
	}
	return dc.Image()
}

func renderGrid(dc *gg.Context, size, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.SetLineWidth(1)
	for x := 0; x <= size; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(size))
		dc.Stroke()
	}
	for y := 0; y <= size; y += blockSize {
		dc.DrawLine(0, float64(y), float64(size), float64(y))
		dc.Stroke()
	}
}

// Scale 缩放到 size x size，size <= 0 时原样返回
func Scale(img image.Image, size int) image.Image {
	if size <= 0 || img.Bounds().Dx() == size {
		return img
	}
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// EncodePNG 写出 PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// SavePNG 保存图片，必要时创建目录
func SavePNG(img image.Image, fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return err
	}
	return imaging.Save(img, fileName)
}
