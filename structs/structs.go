package structs

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDirection 方向字符串不在 up/down/left/right 之中
var ErrInvalidDirection = errors.New("invalid direction")

// Vec2 世界坐标，单位与格子大小对齐。
type Vec2 struct {
	X float64 `json:"x"` // X坐标
	Y float64 `json:"y"` // Y坐标
}

// Direction 蛇节的朝向。零值为 Left。
type Direction uint8

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions 输入检查的固定顺序
var Directions = []Direction{Up, Left, Right, Down}

var directionNames = map[Direction]string{
	Up:    "up",
	Left:  "left",
	Right: "right",
	Down:  "down",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Opposite 返回反方向
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	default:
		return Right
	}
}

// ParseDirection 解析 "up", "down", "left", "right"
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return Left, fmt.Errorf("%w '%s'", ErrInvalidDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Field 描述正方形游戏场地：格子范围为 [-Range, Range]，每格 CellSize 个世界单位。
type Field struct {
	CellSize float64 `json:"cell_size"` // 格子大小
	Range    int     `json:"range"`     // 半宽，单位为格子
}

// DefaultField 11x11 个格子，每格 50
var DefaultField = Field{CellSize: 50, Range: 5}

// Valid 格子大小为正且半宽不为负
func (f Field) Valid() bool {
	return f.CellSize > 0 && f.Range >= 0
}

// Extent 场地边界的世界坐标
func (f Field) Extent() float64 {
	return float64(f.Range) * f.CellSize
}

// Cells 场地格子总数
func (f Field) Cells() int {
	side := 2*f.Range + 1
	return side * side
}

// Contains reports whether p lies within [-Extent, Extent] on both axes.
func (f Field) Contains(p Vec2) bool {
	e := f.Extent()
	return p.X >= -e && p.X <= e && p.Y >= -e && p.Y <= e
}

// Cell 将世界坐标换算为格子坐标
func (f Field) Cell(p Vec2) (int, int) {
	return int(math.Round(p.X / f.CellSize)), int(math.Round(p.Y / f.CellSize))
}

// Point 将格子坐标换算为世界坐标
func (f Field) Point(x, y int) Vec2 {
	return Vec2{X: float64(x) * f.CellSize, Y: float64(y) * f.CellSize}
}

// Frame 某一时刻的只读快照，用于绘图和传输。
type Frame struct {
	Segments []Vec2    `json:"segments"`        // 蛇身，从头到尾
	Heading  Direction `json:"heading"`         // 蛇头方向
	Fruit    *Vec2     `json:"fruit,omitempty"` // 当前食物，游戏结束后保留到重开
	Field    Field     `json:"field"`           // 场地
	Length   int       `json:"length"`          // 蛇长
	Ticks    uint64    `json:"ticks"`           // 已执行的固定刻数
	Eaten    int       `json:"eaten"`           // 吃掉的食物数
	Over     bool      `json:"over"`            // 游戏结束
}

// EventKind 一次刷新产生的副作用请求
type EventKind string

const (
	FruitSpawned   EventKind = "fruit_spawned"
	FruitEaten     EventKind = "fruit_eaten"
	SnakeGrown     EventKind = "snake_grown"
	SnakeDestroyed EventKind = "snake_destroyed"
)

// Event 交给外部世界执行的实体生命周期请求
type Event struct {
	Kind     EventKind `json:"kind"`
	Position Vec2      `json:"position"`
	Length   int       `json:"length,omitempty"`
}
