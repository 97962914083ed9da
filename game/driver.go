package game

import (
	"context"
	"log"
	"time"

	"github.com/hoshinonyaruko/snake-chain/structs"
)

// Driver 外部调度：固定间隔调用 OnFixedTick，按帧率调用 OnFrame
type Driver struct {
	Registry *Registry
	Tick     time.Duration
	Frame    time.Duration
	// OnEvents 收到每局产生的事件，可为空
	OnEvents func(id string, events []structs.Event)
	// Interval 非空时每个固定刻后重新读取两个间隔，用于配置热更新
	Interval func() (tick, frame time.Duration)
}

// Run 阻塞直到 ctx 结束
func (d *Driver) Run(ctx context.Context) error {
	tick := time.NewTicker(d.Tick)
	defer tick.Stop()
	frame := time.NewTicker(d.Frame)
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frame.C:
			d.Registry.Each(func(id string, g *Game) {
				d.dispatch(id, g.OnFrame(nil))
			})
		case <-tick.C:
			d.Registry.Each(func(id string, g *Game) {
				d.dispatch(id, g.OnFixedTick())
			})
			d.retime(tick, frame)
		}
	}
}

// retime 间隔变化时重置计时器，非正值忽略
func (d *Driver) retime(tick, frame *time.Ticker) {
	if d.Interval == nil {
		return
	}
	t, f := d.Interval()
	if t > 0 && t != d.Tick {
		d.Tick = t
		tick.Reset(t)
	}
	if f > 0 && f != d.Frame {
		d.Frame = f
		frame.Reset(f)
	}
}

func (d *Driver) dispatch(id string, events []structs.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case structs.SnakeDestroyed:
			log.Printf("session %s: game over, length %d", id, ev.Length)
		case structs.SnakeGrown:
			log.Printf("session %s: snake grew to %d", id, ev.Length)
		}
	}
	if d.OnEvents != nil {
		d.OnEvents(id, events)
	}
}
