package ui

import (
	"strings"
	"testing"
)

func TestPanelString_PadsToWidestVisibleLine(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	got := PanelString([]string{C(fgGreen, "ok"), "longer"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "┌"+strings.Repeat("─", 8)+"┐" {
		t.Fatalf("top border = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "ok"+reset+"     │") {
		t.Fatalf("coloured line not padded by visible width: %q", lines[1])
	}
}

func TestExpiryBar(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	defer SetColorForcing(false, false)

	cases := []struct {
		elapsed, total float64
		want           string
	}{
		{0, 10, "..... " + "  0%"},
		{5, 10, "##... " + " 50%"},
		{20, 10, "##### " + "100%"},
	}
	for _, c := range cases {
		if got := ExpiryBar(c.elapsed, c.total, 5); got != c.want {
			t.Fatalf("ExpiryBar(%v,%v) = %q, want %q", c.elapsed, c.total, got, c.want)
		}
	}
}

func TestC_DisabledReturnsPlain(t *testing.T) {
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)
	if got := C(fgRed, "x"); got != "x" {
		t.Fatalf("got %q", got)
	}
}
