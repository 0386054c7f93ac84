package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fixedWidget struct{ text string }

func (w fixedWidget) Render(width, height int) string {
	return w.text
}

func TestVStackFixedAndFlexHeights(t *testing.T) {
	v := VStack{
		Widgets: []Widget{fixedWidget{"header"}, fixedWidget{"body"}, fixedWidget{"footer"}},
		Heights: []int{1, 0, 1},
	}
	got := v.Layout(10)
	if got[0] != 1 || got[1] != 8 || got[2] != 1 {
		t.Fatalf("layout = %v, want [1 8 1]", got)
	}
	lines := strings.Split(v.Render(12, 10), "\n")
	if len(lines) != 10 {
		t.Fatalf("line count = %d, want 10", len(lines))
	}
	if !strings.HasPrefix(lines[0], "header") || !strings.HasPrefix(lines[1], "body") || !strings.HasPrefix(lines[9], "footer") {
		t.Fatalf("unexpected layout:\n%s", strings.Join(lines, "\n"))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 12 {
			t.Fatalf("line %d width = %d, want 12", i, w)
		}
	}
}

func TestVStackSharesFlexRowsEvenly(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"title"}, fixedWidget{"top"}, fixedWidget{"bottom"}}, Heights: []int{1}}
	got := v.Layout(8)
	if got[0] != 1 || got[1] != 4 || got[2] != 3 {
		t.Fatalf("layout = %v, want [1 4 3]", got)
	}
	out := v.Render(20, 8)
	if !strings.Contains(out, "top") || !strings.Contains(out, "bottom") {
		t.Fatalf("expected both widgets in output")
	}
}

func TestVStackTooShort(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"a"}, fixedWidget{"b"}}, Heights: []int{3, 3}}
	got := v.Layout(4)
	if got[0] != 3 || got[1] != 1 {
		t.Fatalf("layout = %v, want [3 1]", got)
	}
	if out := v.Render(0, 4); out != "" {
		t.Fatalf("expected empty render for zero width, got %q", out)
	}
}

func TestTextAndFuncWidgets(t *testing.T) {
	if got := Text("hi").Render(4, 2); got != "hi  \n    " {
		t.Fatalf("Text render = %q", got)
	}
	f := Func(func(w, h int) string { return strings.Repeat("x", w) })
	if got := f.Render(3, 1); got != "xxx" {
		t.Fatalf("Func render = %q", got)
	}
}
