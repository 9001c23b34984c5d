package jterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderStyle_Glyphs(t *testing.T) {
	type tc struct {
		style BorderStyle
		want  BorderGlyphs
	}

	tests := map[string]tc{
		"solid":   {style: BorderSolid, want: BorderGlyphs{'─', '│', '┌', '┐', '└', '┘'}},
		"heavy":   {style: BorderHeavy, want: BorderGlyphs{'━', '┃', '┏', '┓', '┗', '┛'}},
		"double":  {style: BorderDouble, want: BorderGlyphs{'═', '║', '╔', '╗', '╚', '╝'}},
		"rounded": {style: BorderRounded, want: BorderGlyphs{'─', '│', '╭', '╮', '╰', '╯'}},
		"dashed":  {style: BorderDashed, want: BorderGlyphs{'┄', '┆', '┌', '┐', '└', '┘'}},
		"none":    {style: BorderNone, want: BorderGlyphs{' ', ' ', ' ', ' ', ' ', ' '}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.style.Glyphs())
		})
	}
}

func TestBorder_Space(t *testing.T) {
	type tc struct {
		border     Border
		horizontal int
		vertical   int
	}

	tests := map[string]tc{
		"none":        {border: NoBorder()},
		"all sides":   {border: BorderAll(BorderSolid), horizontal: 2, vertical: 2},
		"bottom only": {border: Border{Bottom: BorderDouble}, vertical: 1},
		"left right":  {border: Border{Left: BorderHeavy, Right: BorderHeavy}, horizontal: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.horizontal, tt.border.Horizontal())
			assert.Equal(t, tt.vertical, tt.border.Vertical())
			assert.Equal(t, tt.horizontal == 0 && tt.vertical == 0, tt.border.IsZero())
		})
	}
}
