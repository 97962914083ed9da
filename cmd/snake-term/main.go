// snake-term 在终端里驱动一局游戏：方向键或 WASD 控制，r 重开，q 或 Esc 退出
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-chain/game"
	"github.com/hoshinonyaruko/snake-chain/structs"
)

func main() {
	rng := flag.Int("range", structs.DefaultField.Range, "half extent of the field in cells")
	tick := flag.Duration("tick", 300*time.Millisecond, "fixed tick interval")
	length := flag.Int("length", 3, "initial snake length")
	seed := flag.Uint64("seed", 0, "fruit seed, 0 for time based")
	flag.Parse()

	field := structs.Field{CellSize: structs.DefaultField.CellSize, Range: *rng}
	g := game.New(field, game.Options{InitialLength: *length, Seed: *seed})

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	run(screen, g, *tick, time.Second/60)
	screen.Fini()

	f := g.Frame()
	fmt.Printf("eaten %d, %d ticks\n", f.Eaten, f.Ticks)
}

type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdRestart
)

// keyDirection 方向键和 WASD
func keyDirection(key tcell.Key, r rune) (structs.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return structs.Up, true
	case tcell.KeyDown:
		return structs.Down, true
	case tcell.KeyLeft:
		return structs.Left, true
	case tcell.KeyRight:
		return structs.Right, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return structs.Up, true
		case 's', 'S':
			return structs.Down, true
		case 'a', 'A':
			return structs.Left, true
		case 'd', 'D':
			return structs.Right, true
		}
	}
	return structs.Left, false
}

func keyCommand(key tcell.Key, r rune) command {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return cmdQuit
	case key == tcell.KeyRune && (r == 'q' || r == 'Q'):
		return cmdQuit
	case key == tcell.KeyRune && (r == 'r' || r == 'R'):
		return cmdRestart
	}
	return cmdNone
}

// run 直到按下退出键
func run(screen tcell.Screen, g *game.Game, tickInterval, frameInterval time.Duration) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	frame := time.NewTicker(frameInterval)
	defer frame.Stop()

	keys := game.Keys{}
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch keyCommand(ev.Key(), ev.Rune()) {
				case cmdQuit:
					return
				case cmdRestart:
					g.Restart()
					continue
				}
				if d, ok := keyDirection(ev.Key(), ev.Rune()); ok {
					keys[d] = true
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-frame.C:
			g.OnFrame(keys)
			keys = game.Keys{}
			draw(screen, g.Frame())
		case <-tick.C:
			g.OnFixedTick()
		}
	}
}

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFruit  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// cellOrigin 格子左上角在屏幕上的位置，每个格子占两列
func cellOrigin(field structs.Field, p structs.Vec2) (int, int) {
	x, y := field.Cell(p)
	return (x+field.Range)*2 + 1, (field.Range - y) + 1
}

func setCell(screen tcell.Screen, col, row int, r rune, style tcell.Style) {
	screen.SetContent(col, row, r, nil, style)
	screen.SetContent(col+1, row, r, nil, style)
}

func draw(screen tcell.Screen, f structs.Frame) {
	screen.Clear()
	side := 2*f.Field.Range + 1
	width, height := side*2+2, side+2

	for col := 0; col < width; col++ {
		screen.SetContent(col, 0, '─', nil, styleBorder)
		screen.SetContent(col, height-1, '─', nil, styleBorder)
	}
	for row := 0; row < height; row++ {
		screen.SetContent(0, row, '│', nil, styleBorder)
		screen.SetContent(width-1, row, '│', nil, styleBorder)
	}
	screen.SetContent(0, 0, '┌', nil, styleBorder)
	screen.SetContent(width-1, 0, '┐', nil, styleBorder)
	screen.SetContent(0, height-1, '└', nil, styleBorder)
	screen.SetContent(width-1, height-1, '┘', nil, styleBorder)

	if f.Fruit != nil {
		col, row := cellOrigin(f.Field, *f.Fruit)
		setCell(screen, col, row, '●', styleFruit)
	}
	// 反向绘制，保证蛇头在最上层
	for i := len(f.Segments) - 1; i >= 0; i-- {
		col, row := cellOrigin(f.Field, f.Segments[i])
		if i == 0 {
			setCell(screen, col, row, '█', styleHead)
		} else {
			setCell(screen, col, row, '▓', styleBody)
		}
	}

	status := fmt.Sprintf("length %d  eaten %d  tick %d", f.Length, f.Eaten, f.Ticks)
	if f.Over {
		status = fmt.Sprintf("game over, eaten %d  [r] restart  [q] quit", f.Eaten)
	}
	for i, r := range status {
		screen.SetContent(i, height, r, nil, styleText)
	}
	screen.Show()
}
