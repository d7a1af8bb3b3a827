package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenPenColors(t *testing.T) {
	s := NewScreen(10, 2)

	s.Pen(ColorRed)
	s.Set(0, 0, 'R')
	s.DrawTextColor(2, 0, "ok", ColorGreen)
	s.Set(1, 0, 'r')

	if c := s.GetCell(0, 0); c.Color != ColorRed {
		t.Errorf("cell (0,0) color = %d, expected red", c.Color)
	}
	if c := s.GetCell(2, 0); c.Color != ColorGreen {
		t.Errorf("cell (2,0) color = %d, expected green", c.Color)
	}
	if c := s.GetCell(1, 0); c.Color != ColorRed {
		t.Error("DrawTextColor must restore the previous pen")
	}

	s.Clear()
	s.Set(0, 1, 'x')
	if c := s.GetCell(0, 1); c.Color != ColorDefault {
		t.Error("Clear should reset the pen")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "→ab")

	if s.Get(0, 0) != '→' || s.Get(1, 0) != 'a' || s.Get(2, 0) != 'b' {
		t.Errorf("multibyte text misplaced: %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("edges not drawn")
	}
}

func TestScreenDrawMessage(t *testing.T) {
	s := NewScreen(40, 12)
	s.DrawMessage("WON", "Press R")

	if !strings.Contains(s.String(), "WON") || !strings.Contains(s.String(), "Press R") {
		t.Errorf("message not drawn:\n%s", s.String())
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("resize should clear content, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != "        " {
		t.Error("out of bounds row should be spaces")
	}
}
