package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-chain/structs"
	"github.com/stretchr/testify/require"
)

func TestKeyDirection(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want structs.Direction
	}{
		{tcell.KeyUp, 0, structs.Up},
		{tcell.KeyDown, 0, structs.Down},
		{tcell.KeyLeft, 0, structs.Left},
		{tcell.KeyRight, 0, structs.Right},
		{tcell.KeyRune, 'w', structs.Up},
		{tcell.KeyRune, 'A', structs.Left},
		{tcell.KeyRune, 's', structs.Down},
		{tcell.KeyRune, 'd', structs.Right},
	}
	for _, c := range cases {
		d, ok := keyDirection(c.key, c.r)
		require.True(t, ok)
		require.Equal(t, c.want, d)
	}

	_, ok := keyDirection(tcell.KeyRune, 'x')
	require.False(t, ok)
	_, ok = keyDirection(tcell.KeyEnter, 0)
	require.False(t, ok)
}

func TestKeyCommand(t *testing.T) {
	require.Equal(t, cmdQuit, keyCommand(tcell.KeyEscape, 0))
	require.Equal(t, cmdQuit, keyCommand(tcell.KeyRune, 'q'))
	require.Equal(t, cmdRestart, keyCommand(tcell.KeyRune, 'r'))
	require.Equal(t, cmdNone, keyCommand(tcell.KeyRune, 'w'))
}

func TestCellOrigin(t *testing.T) {
	field := structs.DefaultField
	col, row := cellOrigin(field, structs.Vec2{})
	require.Equal(t, 11, col)
	require.Equal(t, 6, row)

	col, row = cellOrigin(field, structs.Vec2{X: -250, Y: 250})
	require.Equal(t, 1, col)
	require.Equal(t, 1, row)

	col, row = cellOrigin(field, structs.Vec2{X: 250, Y: -250})
	require.Equal(t, 21, col)
	require.Equal(t, 11, row)
}
