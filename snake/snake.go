// 关于蛇身链条的更新
package snake

import (
	"iter"

	"github.com/hoshinonyaruko/snake-chain/structs"
)

// terminal 链条结尾标记
const terminal = -1

// Segment 蛇身上的一节
type Segment struct {
	Position  structs.Vec2      `json:"position"`  // 位置
	Direction structs.Direction `json:"direction"` // 下一次移动的方向
	Skip      bool              `json:"skip"`      // 为真时下一刻不移动
	next      int
}

// Body 蛇身链条。节点存放在切片里，通过 next 下标相连；零值是空链条。
type Body struct {
	field structs.Field
	segs  []Segment
	head  int
	tail  int
}

// New 创建只有一节的链条，方向向左
func New(field structs.Field, pos structs.Vec2) *Body {
	return &Body{
		field: field,
		segs:  []Segment{{Position: pos, Direction: structs.Left, next: terminal}},
		head:  0,
		tail:  0,
	}
}

func (b *Body) Empty() bool {
	return b == nil || len(b.segs) == 0
}

func (b *Body) Len() int {
	if b.Empty() {
		return 0
	}
	return len(b.segs)
}

// Append 将 other 的所有节按顺序接到真正的尾部之后，已有的节保持不变。
// 空链条上调用时结果是 other 的副本。
func (b *Body) Append(other *Body) *Body {
	if other.Empty() {
		return b
	}
	if b == nil {
		return other.clone()
	}
	if b.Empty() {
		field := b.field
		*b = *other.clone()
		if field.CellSize != 0 {
			b.field = field
		}
		return b
	}
	if other == b {
		other = b.clone()
	}
	for i := other.head; i != terminal; i = other.segs[i].next {
		seg := other.segs[i]
		seg.next = terminal
		b.segs = append(b.segs, seg)
		idx := len(b.segs) - 1
		b.segs[b.tail].next = idx
		b.tail = idx
	}
	return b
}

// clone 复制链条，节点按链条顺序重新排列
func (b *Body) clone() *Body {
	c := &Body{field: b.field, segs: make([]Segment, 0, len(b.segs)), tail: terminal}
	for i := b.head; i != terminal; i = b.segs[i].next {
		seg := b.segs[i]
		seg.next = terminal
		c.segs = append(c.segs, seg)
		idx := len(c.segs) - 1
		if c.tail != terminal {
			c.segs[c.tail].next = idx
		}
		c.tail = idx
	}
	return c
}

// SetDirection 只修改蛇头的方向，其余节在 Advance 中接收传递下来的方向
func (b *Body) SetDirection(d structs.Direction) {
	if b.Empty() {
		return
	}
	b.segs[b.head].Direction = d
}

// Tail 返回最后一节的副本
func (b *Body) Tail() *Body {
	if b.Empty() {
		return &Body{}
	}
	seg := b.segs[b.tail]
	seg.next = terminal
	return &Body{field: b.field, segs: []Segment{seg}}
}

// Wait 让这条链条的第一节在下一刻停住
func (b *Body) Wait() {
	if b.Empty() {
		return
	}
	b.segs[b.head].Skip = true
}

// Grow 复制尾部，让它等一刻，再接到尾部
func (b *Body) Grow() {
	if b.Empty() {
		return
	}
	last := b.Tail()
	last.Wait()
	b.Append(last)
}

// Advance 从头到尾移动每一节。每一节先按自己的方向移动，
// 然后把前一节本刻使用的方向作为自己的新方向。
func (b *Body) Advance(step float64) {
	if b.Empty() {
		return
	}
	var used structs.Direction
	for i := b.head; i != terminal; i = b.segs[i].next {
		seg := &b.segs[i]
		dir := seg.Direction
		if seg.Skip {
			seg.Skip = false
		} else {
			seg.Position = b.step(seg.Position, dir, step)
		}
		if i != b.head {
			seg.Direction = used
		}
		used = dir
	}
}

// step 沿方向移动一步，越过边界时取相反数，回到另一侧
func (b *Body) step(pos structs.Vec2, dir structs.Direction, size float64) structs.Vec2 {
	extent := b.field.Extent()
	switch dir {
	case structs.Up:
		if pos.Y+size > extent {
			pos.Y = -pos.Y
		} else {
			pos.Y += size
		}
	case structs.Down:
		if pos.Y-size < -extent {
			pos.Y = -pos.Y
		} else {
			pos.Y -= size
		}
	case structs.Right:
		if pos.X+size > extent {
			pos.X = -pos.X
		} else {
			pos.X += size
		}
	default:
		if pos.X-size < -extent {
			pos.X = -pos.X
		} else {
			pos.X -= size
		}
	}
	return pos
}

// Position 蛇头位置，空链条返回零点
func (b *Body) Position() structs.Vec2 {
	if b.Empty() {
		return structs.Vec2{}
	}
	return b.segs[b.head].Position
}

// Direction 蛇头方向，空链条返回 Left
func (b *Body) Direction() structs.Direction {
	if b.Empty() {
		return structs.Left
	}
	return b.segs[b.head].Direction
}

// CollideWithPoint 任意一节的格子与以 p 为中心的格子相交
func (b *Body) CollideWithPoint(p structs.Vec2) bool {
	if b.Empty() {
		return false
	}
	return b.collideFrom(b.head, p)
}

// CollideWithSelf 只检查蛇头与其余各节，不做两两检查
func (b *Body) CollideWithSelf() bool {
	if b.Empty() {
		return false
	}
	return b.collideFrom(b.segs[b.head].next, b.segs[b.head].Position)
}

func (b *Body) collideFrom(start int, p structs.Vec2) bool {
	for i := start; i != terminal; i = b.segs[i].next {
		if Overlap(b.segs[i].Position, p, b.field.CellSize) {
			return true
		}
	}
	return false
}

// Overlap 两个边长为 size、中心在 a 和 b 的方块是否相交（贴边不算）
func Overlap(a, b structs.Vec2, size float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < size && dy < size
}

// Traverse 从头到尾访问每一节的位置
func (b *Body) Traverse(visit func(structs.Vec2)) {
	for pos := range b.Positions() {
		visit(pos)
	}
}

// Positions 惰性遍历，可重复调用
func (b *Body) Positions() iter.Seq[structs.Vec2] {
	return func(yield func(structs.Vec2) bool) {
		if b.Empty() {
			return
		}
		for i := b.head; i != terminal; i = b.segs[i].next {
			if !yield(b.segs[i].Position) {
				return
			}
		}
	}
}

// Segments 按链条顺序返回各节的副本
func (b *Body) Segments() []Segment {
	if b.Empty() {
		return nil
	}
	out := make([]Segment, 0, len(b.segs))
	for i := b.head; i != terminal; i = b.segs[i].next {
		seg := b.segs[i]
		seg.next = terminal
		out = append(out, seg)
	}
	return out
}
