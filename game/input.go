package game

import "github.com/hoshinonyaruko/snake-chain/structs"

// Input 输入来源，回答某个方向键是否刚被按下
type Input interface {
	JustPressed(d structs.Direction) bool
}

// Keys 一帧内按下的方向键
type Keys map[structs.Direction]bool

func (k Keys) JustPressed(d structs.Direction) bool {
	return k[d]
}
