package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type startEnd struct {
	s, e Pos
}

func (se startEnd) Span() (start, end Pos) { return se.s, se.e }

func TestPosInside(t *testing.T) {
	cases := []struct {
		ref, test startEnd
		want      bool
	}{
		{startEnd{MakePos(1, 2), MakePos(1, 4)}, startEnd{MakePos(1, 3), MakePos(1, 3)}, true},
		{startEnd{MakePos(1, 3), MakePos(1, 4)}, startEnd{MakePos(1, 2), MakePos(1, 5)}, false},
		{startEnd{MakePos(1, 1), MakePos(1, 10)}, startEnd{MakePos(1, 1), MakePos(1, 10)}, true},
		{startEnd{MakePos(1, 1), MakePos(1, 4)}, startEnd{MakePos(1, 5), MakePos(1, 6)}, false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v", c.ref, c.test), func(t *testing.T) {
			got := PosInside(c.ref, c.test)
			require.Equal(t, c.want, got)
		})
	}
}

func TestLineCol(t *testing.T) {
	p := MakePos(42, 7)
	l, c := p.LineCol()
	require.Equal(t, 42, l)
	require.Equal(t, 7, c)
	require.False(t, p.Unknown())
	require.True(t, p.IsValid())

	var zero Pos
	require.True(t, zero.Unknown())
	require.False(t, zero.IsValid())
}

func TestFileSetPosition(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("mod.py", []string{"x = 1", "y = 2"})
	require.Same(t, f, fs.File("mod.py"))

	pos := f.Position(MakePos(2, 1))
	require.Equal(t, "mod.py:2:1", pos.String())
	require.Equal(t, "y = 2", f.Line(2))
	require.Equal(t, "", f.Line(99))
}

func TestFormatPos(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("mod.py", []string{"x = 1"})
	p := MakePos(1, 1)

	require.Equal(t, "", FormatPos(PosNone, f, p, true))
	require.Equal(t, "1:1", FormatPos(PosShort, f, p, true))
	require.Equal(t, "mod.py:1:1", FormatPos(PosLong, f, p, true))
	require.Equal(t, fmt.Sprintf("+%d", uint32(p)), FormatPos(PosOffsets, f, p, true))
	require.Equal(t, fmt.Sprintf("-%d", uint32(p)), FormatPos(PosOffsets, f, p, false))
}
