package widgets

import "strings"

// Widget renders itself into a box of the given size.
type Widget interface {
	Render(width, height int) string
}

// Text is a static block of text.
type Text string

func (t Text) Render(width, height int) string {
	lines := splitToLines(string(t), height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// Func adapts a render function to Widget.
type Func func(width, height int) string

func (f Func) Render(width, height int) string { return f(width, height) }

// VStack stacks widgets top to bottom. Widgets with a positive entry in
// Heights get that many rows; the rest share what is left evenly.
type VStack struct {
	Widgets []Widget
	Heights []int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	heights := v.Layout(height)
	lines := make([]string, 0, height)
	for i, w := range v.Widgets {
		if heights[i] > 0 {
			lines = append(lines, splitToLines(w.Render(width, heights[i]), heights[i])...)
		}
	}
	return strings.Join(fitLines(strings.Join(lines, "\n"), width, height), "\n")
}

// Layout returns the height each widget gets out of height.
func (v VStack) Layout(height int) []int {
	out := make([]int, len(v.Widgets))
	remaining := height
	var flex []int
	for i := range v.Widgets {
		if i < len(v.Heights) && v.Heights[i] > 0 {
			out[i] = min(v.Heights[i], max(0, remaining))
			remaining -= out[i]
			continue
		}
		flex = append(flex, i)
	}
	if len(flex) == 0 || remaining <= 0 {
		return out
	}
	for j, h := range splitEven(remaining, len(flex)) {
		out[flex[j]] = h
	}
	return out
}

// splitEven divides total into n parts, giving the remainder to the first
// parts.
func splitEven(total, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = total / n
		if i < total%n {
			out[i]++
		}
	}
	return out
}
