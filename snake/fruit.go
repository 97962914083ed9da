package snake

import (
	"errors"

	"github.com/hoshinonyaruko/snake-chain/structs"
)

// ErrFieldFull 蛇身占满了所有格子，找不到放食物的位置
var ErrFieldFull = errors.New("no free cell left for fruit")

// Source 随机数来源，*rand.Rand (math/rand/v2) 满足此接口
type Source interface {
	IntN(n int) int
}

// Sample 在 [-R, R] x [-R, R] 中均匀选一个格子，换算为世界坐标
func Sample(field structs.Field, src Source) structs.Vec2 {
	side := 2*field.Range + 1
	x := src.IntN(side) - field.Range
	y := src.IntN(side) - field.Range
	return field.Point(x, y)
}

// Place 反复采样，直到位置不与蛇身重叠
func Place(body *Body, field structs.Field, src Source) (structs.Vec2, error) {
	if occupied(body, field) >= field.Cells() {
		return structs.Vec2{}, ErrFieldFull
	}
	for {
		pos := Sample(field, src)
		if !body.CollideWithPoint(pos) {
			return pos, nil
		}
	}
}

// occupied 统计蛇身占用的不同格子数
func occupied(body *Body, field structs.Field) int {
	cells := make(map[[2]int]struct{}, body.Len())
	for pos := range body.Positions() {
		x, y := field.Cell(pos)
		cells[[2]int{x, y}] = struct{}{}
	}
	return len(cells)
}
