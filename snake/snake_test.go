package snake

import (
	"slices"
	"testing"

	"github.com/hoshinonyaruko/snake-chain/structs"
	"github.com/stretchr/testify/require"
)

var field = structs.DefaultField

func v(x, y float64) structs.Vec2 {
	return structs.Vec2{X: x, Y: y}
}

func positions(b *Body) []structs.Vec2 {
	return slices.Collect(b.Positions())
}

func threeSegments() *Body {
	return New(field, v(0, 0)).
		Append(New(field, v(50, 0))).
		Append(New(field, v(100, 0)))
}

func TestNewBody(t *testing.T) {
	b := New(field, v(50, -100))
	require.Equal(t, 1, b.Len())
	require.Equal(t, v(50, -100), b.Position())
	require.Equal(t, structs.Left, b.Direction())
	require.False(t, b.Segments()[0].Skip)
}

func TestEmptyBodyDefaults(t *testing.T) {
	var b Body
	require.True(t, b.Empty())
	require.Equal(t, structs.Vec2{}, b.Position())
	require.Equal(t, structs.Left, b.Direction())
	require.False(t, b.CollideWithPoint(v(0, 0)))
	require.False(t, b.CollideWithSelf())
	require.Equal(t, 0, b.Tail().Len())

	b.Advance(50)
	b.SetDirection(structs.Up)
	b.Wait()
	require.True(t, b.Empty())

	visited := 0
	b.Traverse(func(structs.Vec2) { visited++ })
	require.Zero(t, visited)
}

func TestAppendToEmptyReturnsAppended(t *testing.T) {
	var b Body
	seg := New(field, v(100, 50))
	seg.SetDirection(structs.Down)
	seg.Wait()

	got := b.Append(seg)
	require.Equal(t, 1, got.Len())
	require.Equal(t, v(100, 50), got.Position())
	require.Equal(t, structs.Down, got.Direction())
	require.True(t, got.Segments()[0].Skip)

	var nilBody *Body
	require.Equal(t, 1, nilBody.Append(seg).Len())
}

func TestAppendPreservesExistingSegments(t *testing.T) {
	b := threeSegments()
	b.SetDirection(structs.Up)
	b.Advance(50)
	before := b.Segments()

	b.Append(New(field, v(200, 200)))

	after := b.Segments()
	require.Len(t, after, len(before)+1)
	for i := range before {
		require.Equal(t, before[i].Position, after[i].Position)
		require.Equal(t, before[i].Direction, after[i].Direction)
		require.Equal(t, before[i].Skip, after[i].Skip)
	}
	require.Equal(t, v(200, 200), after[len(after)-1].Position)
}

func TestAppendMultiSegmentChain(t *testing.T) {
	b := New(field, v(0, 0))
	b.Append(New(field, v(50, 0)).Append(New(field, v(100, 0))))
	require.Equal(t, []structs.Vec2{v(0, 0), v(50, 0), v(100, 0)}, positions(b))

	b.Append(b)
	require.Equal(t, 6, b.Len())
}

func TestLengthMonotonic(t *testing.T) {
	b := New(field, v(0, 0))
	for i := 1; i < 20; i++ {
		n := b.Len()
		b.Grow()
		require.Equal(t, n+1, b.Len())
		b.Advance(field.CellSize)
		require.Equal(t, n+1, b.Len())
	}
}

func TestTailIsCopy(t *testing.T) {
	b := threeSegments()
	tail := b.Tail()
	require.Equal(t, 1, tail.Len())
	require.Equal(t, v(100, 0), tail.Position())

	tail.Wait()
	tail.SetDirection(structs.Up)
	require.False(t, b.Segments()[2].Skip)
	require.Equal(t, structs.Left, b.Segments()[2].Direction)
}

func TestSetDirectionOnlyHead(t *testing.T) {
	b := threeSegments()
	b.SetDirection(structs.Down)
	segs := b.Segments()
	require.Equal(t, structs.Down, segs[0].Direction)
	require.Equal(t, structs.Left, segs[1].Direction)
	require.Equal(t, structs.Left, segs[2].Direction)
}

func TestAdvanceScenario(t *testing.T) {
	b := threeSegments()
	b.Advance(50)
	require.Equal(t, []structs.Vec2{v(-50, 0), v(0, 0), v(50, 0)}, positions(b))

	b.SetDirection(structs.Up)
	b.Advance(50)
	require.Equal(t, []structs.Vec2{v(-50, 50), v(-50, 0), v(0, 0)}, positions(b))

	segs := b.Segments()
	require.Equal(t, structs.Up, segs[0].Direction)
	require.Equal(t, structs.Up, segs[1].Direction)
	require.Equal(t, structs.Left, segs[2].Direction)

	// the growth template carries the tail's direction forward
	tail := b.Tail()
	require.Equal(t, structs.Left, tail.Direction())

	b.Advance(50)
	require.Equal(t, []structs.Vec2{v(-50, 100), v(-50, 50), v(-50, 0)}, positions(b))
	require.Equal(t, structs.Up, b.Tail().Direction())
}

func TestFollowerLag(t *testing.T) {
	b := threeSegments()
	b.Grow()
	turns := map[int]structs.Direction{2: structs.Up, 5: structs.Right, 9: structs.Down, 14: structs.Left, 20: structs.Up}

	prev := positions(b)
	for tick := 0; tick < 40; tick++ {
		if d, ok := turns[tick]; ok {
			b.SetDirection(d)
		}
		b.Advance(field.CellSize)
		cur := positions(b)
		for i := 1; i < len(cur); i++ {
			require.Equal(t, prev[i-1], cur[i], "tick %d segment %d", tick, i)
		}
		prev = cur
	}
}

func TestSkipHoldsOneTick(t *testing.T) {
	b := threeSegments()
	b.Grow()
	require.Equal(t, 4, b.Len())
	require.True(t, b.Segments()[3].Skip)

	b.Advance(50)
	segs := b.Segments()
	require.Equal(t, v(100, 0), segs[3].Position)
	require.False(t, segs[3].Skip)
	require.Equal(t, v(50, 0), segs[2].Position)

	b.Advance(50)
	require.Equal(t, v(50, 0), b.Segments()[3].Position)
}

func TestWraparound(t *testing.T) {
	extent := field.Extent()
	cases := []struct {
		dir  structs.Direction
		from structs.Vec2
		want structs.Vec2
	}{
		{structs.Right, v(extent, 100), v(-extent, 100)},
		{structs.Left, v(-extent, -50), v(extent, -50)},
		{structs.Up, v(0, extent), v(0, -extent)},
		{structs.Down, v(150, -extent), v(150, extent)},
		{structs.Left, v(-200, 0), v(-250, 0)},
	}
	for _, c := range cases {
		b := New(field, c.from)
		b.SetDirection(c.dir)
		b.Advance(field.CellSize)
		require.Equal(t, c.want, b.Position(), "%s from %v", c.dir, c.from)
	}
}

func TestStaysWithinField(t *testing.T) {
	for _, d := range structs.Directions {
		b := threeSegments()
		b.SetDirection(d)
		for i := 0; i < 3*field.Cells(); i++ {
			b.Advance(field.CellSize)
			for pos := range b.Positions() {
				require.True(t, field.Contains(pos), "%v out of field", pos)
			}
		}
	}
}

func TestFullLapReturnsHome(t *testing.T) {
	b := New(field, v(0, 0))
	b.SetDirection(structs.Right)
	for i := 0; i < 2*field.Range+1; i++ {
		b.Advance(field.CellSize)
	}
	require.Equal(t, v(0, 0), b.Position())
}

func TestCollideWithPoint(t *testing.T) {
	b := threeSegments()
	require.True(t, b.CollideWithPoint(v(0, 0)))
	require.True(t, b.CollideWithPoint(v(100, 0)))
	require.True(t, b.CollideWithPoint(v(120, 30)))
	// touching edges do not overlap
	require.False(t, b.CollideWithPoint(v(150, 0)))
	require.False(t, b.CollideWithPoint(v(0, 50)))
	require.False(t, b.CollideWithPoint(v(-50, 0)))
}

func TestCollideWithSelf(t *testing.T) {
	require.False(t, New(field, v(0, 0)).CollideWithSelf())
	require.False(t, threeSegments().CollideWithSelf())

	// head on top of the tail
	b := New(field, v(0, 0)).Append(New(field, v(50, 0))).Append(New(field, v(0, 0)))
	require.True(t, b.CollideWithSelf())

	// a freshly grown single segment sits on the head
	single := New(field, v(0, 0))
	single.Grow()
	require.True(t, single.CollideWithSelf())
}

func TestCollideWithSelfAfterLoop(t *testing.T) {
	b := New(field, v(0, 0))
	for i := 0; i < 4; i++ {
		b.Grow()
		b.Advance(field.CellSize)
	}
	require.Equal(t, 5, b.Len())
	require.False(t, b.CollideWithSelf())

	for _, d := range []structs.Direction{structs.Up, structs.Right, structs.Down} {
		b.SetDirection(d)
		b.Advance(field.CellSize)
	}
	require.True(t, b.CollideWithSelf())
}

func TestTraverseRestartable(t *testing.T) {
	b := threeSegments()
	var first, second []structs.Vec2
	b.Traverse(func(p structs.Vec2) { first = append(first, p) })
	b.Traverse(func(p structs.Vec2) { second = append(second, p) })
	require.Equal(t, first, second)
	require.Equal(t, []structs.Vec2{v(0, 0), v(50, 0), v(100, 0)}, first)

	for p := range b.Positions() {
		require.Equal(t, v(0, 0), p)
		break
	}
}
