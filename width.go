package jterm

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// textWidth returns the number of cells s occupies on screen.
func textWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// splitLines splits s on explicit line breaks. An empty string is one empty line.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// wrapLine hard-wraps one logical line into rows of at most width cells.
// Every line, including an empty one, yields at least one row. A cluster
// wider than width gets a row of its own.
func wrapLine(line string, width int) []string {
	if width <= 0 || line == "" {
		return []string{line}
	}
	if isPlainASCII(line) {
		rows := make([]string, 0, (len(line)+width-1)/width)
		for len(line) > width {
			rows = append(rows, line[:width])
			line = line[width:]
		}
		return append(rows, line)
	}

	var rows []string
	var cur strings.Builder
	curWidth := 0
	state := -1
	for len(line) > 0 {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		w := clusterWidth(cluster)
		if curWidth+w > width && curWidth > 0 {
			rows = append(rows, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(cluster)
		curWidth += w
	}
	return append(rows, cur.String())
}

// wrapLines wraps every logical line and flattens the result into display rows.
func wrapLines(lines []string, width int) []string {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, wrapLine(l, width)...)
	}
	return rows
}

// clipCells returns the part of s that falls in columns [from, to) when s
// starts at column 0, and the column where that part begins. Clusters cut by
// either edge are dropped.
func clipCells(s string, from, to int) (string, int) {
	if from <= 0 && textWidth(s) <= to {
		return s, 0
	}
	var out strings.Builder
	start := -1
	col := 0
	state := -1
	for len(s) > 0 && col < to {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := clusterWidth(cluster)
		if col >= from && col+w <= to {
			if start < 0 {
				start = col
			}
			out.WriteString(cluster)
		}
		col += w
	}
	if start < 0 {
		return "", 0
	}
	return out.String(), start
}
