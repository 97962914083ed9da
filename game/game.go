// Package game 持有一局游戏中的蛇和食物实体，并提供每帧和固定刻两个钩子。
package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hoshinonyaruko/snake-chain/snake"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

// Options 对局参数
type Options struct {
	InitialLength int          // 开局蛇长，至少为 1
	Seed          uint64       // 0 表示按时间取种子
	Source        snake.Source // 非空时优先使用
}

// Game 一局单人游戏。所有导出方法都持有同一把锁，同一时刻只有一个写者。
type Game struct {
	mu sync.Mutex

	field structs.Field
	opts  Options
	rng   snake.Source

	body  *snake.Body   // 蛇被销毁后为 nil
	fruit *structs.Vec2 // 没有食物时为 nil
	keys  Keys          // 等待下一帧处理的按键

	ticks uint64
	eaten int
	over  bool

	subs   map[int]chan structs.Frame
	nextID int
}

// New 创建一局游戏，场地无效时使用 DefaultField
func New(field structs.Field, opts Options) *Game {
	if !field.Valid() {
		field = structs.DefaultField
	}
	if opts.InitialLength < 1 {
		opts.InitialLength = 1
	}
	g := &Game{
		field: field,
		opts:  opts,
		rng:   opts.Source,
		subs:  make(map[int]chan structs.Frame),
	}
	if g.rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	g.reset()
	return g
}

// reset 蛇头在原点，其余各节依次排在右边，全部向左
func (g *Game) reset() {
	length := g.opts.InitialLength
	if limit := g.field.Range + 1; length > limit {
		length = limit
	}
	body := snake.New(g.field, structs.Vec2{})
	for i := 1; i < length; i++ {
		body.Append(snake.New(g.field, g.field.Point(i, 0)))
	}
	g.body = body
	g.fruit = nil
	g.keys = Keys{}
	g.ticks = 0
	g.eaten = 0
	g.over = false
}

// Restart 重置全部状态
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
	g.publish()
}

// Press 记录一次按键，下一帧处理
func (g *Game) Press(d structs.Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.keys[d] = true
}

// OnFrame 每帧调用：先处理方向输入，再在没有食物时放置食物。
// 方向输入与本帧开始时的蛇头方向比较，拒绝直接掉头。
func (g *Game) OnFrame(input Input) []structs.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	pending := g.keys
	g.keys = Keys{}
	if g.body == nil {
		return nil
	}

	current := g.body.Direction()
	for _, d := range structs.Directions {
		pressed := pending.JustPressed(d) || (input != nil && input.JustPressed(d))
		if pressed && d != current.Opposite() {
			g.body.SetDirection(d)
		}
	}

	if g.fruit != nil {
		return nil
	}
	pos, err := snake.Place(g.body, g.field, g.rng)
	if err != nil {
		// 场地已满，不再放食物
		return nil
	}
	g.fruit = &pos
	return []structs.Event{{Kind: structs.FruitSpawned, Position: pos}}
}

// OnFixedTick 固定刻调用：移动，吃食物，检查是否咬到自己
func (g *Game) OnFixedTick() []structs.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.body == nil {
		return nil
	}
	var events []structs.Event

	g.ticks++
	g.body.Advance(g.field.CellSize)

	head := g.body.Position()
	if g.fruit != nil && snake.Overlap(head, *g.fruit, g.field.CellSize) {
		events = append(events, structs.Event{Kind: structs.FruitEaten, Position: *g.fruit})
		g.fruit = nil
		g.body.Grow()
		g.eaten++
		events = append(events, structs.Event{Kind: structs.SnakeGrown, Position: g.body.Tail().Position(), Length: g.body.Len()})
	}

	if g.body.CollideWithSelf() {
		events = append(events, structs.Event{Kind: structs.SnakeDestroyed, Position: head, Length: g.body.Len()})
		g.body = nil
		g.over = true
	}

	g.publish()
	return events
}

// Over 游戏是否已结束
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// Frame 当前状态的快照
func (g *Game) Frame() structs.Frame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame()
}

func (g *Game) frame() structs.Frame {
	f := structs.Frame{
		Field: g.field,
		Ticks: g.ticks,
		Eaten: g.eaten,
		Over:  g.over,
	}
	if g.body != nil {
		f.Segments = make([]structs.Vec2, 0, g.body.Len())
		g.body.Traverse(func(p structs.Vec2) {
			f.Segments = append(f.Segments, p)
		})
		f.Heading = g.body.Direction()
		f.Length = g.body.Len()
	}
	if g.fruit != nil {
		fruit := *g.fruit
		f.Fruit = &fruit
	}
	return f
}

// Subscribe 每个固定刻之后收到一份快照；慢的订阅者会丢帧
func (g *Game) Subscribe() (<-chan structs.Frame, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	ch := make(chan structs.Frame, 1)
	g.subs[id] = ch
	return ch, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if _, ok := g.subs[id]; ok {
			delete(g.subs, id)
			close(ch)
		}
	}
}

func (g *Game) publish() {
	if len(g.subs) == 0 {
		return
	}
	f := g.frame()
	for _, ch := range g.subs {
		select {
		case ch <- f:
		default:
		}
	}
}
