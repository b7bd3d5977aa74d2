package grapheme

import "testing"

const (
	eAcute = "e\u0301"
	family = "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	flag   = "\U0001F1EF\U0001F1F5"
)

func TestSplitAndCount(t *testing.T) {
	text := "a" + eAcute + family + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want 4", len(got))
	}
	if got[1].Text != eAcute || got[1].Offset != 1 {
		t.Fatalf("split[1]=%+v, want e-acute at 1", got[1])
	}
	if got[2].Text != family || got[2].Width != 2 {
		t.Fatalf("split[2]=%+v, want family emoji of width 2", got[2])
	}
	if got[3].End() != len(text) {
		t.Fatalf("last cluster ends at %d, want %d", got[3].End(), len(text))
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want 4", c)
	}
	if Split("") != nil || Count("") != 0 {
		t.Fatal("empty text should have no clusters")
	}
}

func TestFloorCeil(t *testing.T) {
	text := "a" + eAcute + flag
	// offsets: a=0, e=1, combining=2..3, flag=4..11, end=12
	tests := []struct {
		offset      int
		floor, ceil int
	}{
		{-3, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 4},
		{3, 1, 4},
		{4, 4, 4},
		{6, 4, 12},
		{11, 4, 12},
		{12, 12, 12},
		{99, 12, 12},
	}
	for _, tt := range tests {
		if got := Floor(text, tt.offset); got != tt.floor {
			t.Errorf("Floor(%d) = %d, want %d", tt.offset, got, tt.floor)
		}
		if got := Ceil(text, tt.offset); got != tt.ceil {
			t.Errorf("Ceil(%d) = %d, want %d", tt.offset, got, tt.ceil)
		}
	}
}

func TestNextPrev(t *testing.T) {
	text := "a" + eAcute + flag
	var forward []int
	for pos := 0; pos < len(text); pos = Next(text, pos) {
		forward = append(forward, pos)
	}
	want := []int{0, 1, 4}
	if len(forward) != len(want) {
		t.Fatalf("forward stops = %v, want %v", forward, want)
	}
	for i := range want {
		if forward[i] != want[i] {
			t.Fatalf("forward stops = %v, want %v", forward, want)
		}
	}

	if got := Prev(text, len(text)); got != 4 {
		t.Errorf("Prev(end) = %d, want 4", got)
	}
	if got := Prev(text, 4); got != 1 {
		t.Errorf("Prev(4) = %d, want 1", got)
	}
	if got := Prev(text, 0); got != 0 {
		t.Errorf("Prev(0) = %d, want 0", got)
	}
	if got := Next(text, len(text)); got != len(text) {
		t.Errorf("Next(end) = %d, want %d", got, len(text))
	}
}

func TestEmptyText(t *testing.T) {
	for _, offset := range []int{-1, 0, 5} {
		if Floor("", offset) != 0 || Ceil("", offset) != 0 || Next("", offset) != 0 || Prev("", offset) != 0 {
			t.Errorf("empty text boundary at %d not 0", offset)
		}
	}
	if !IsBoundary("", 0) {
		t.Error("0 should be a boundary of empty text")
	}
}

func TestIsBoundary(t *testing.T) {
	text := "x" + eAcute
	want := map[int]bool{-1: false, 0: true, 1: true, 2: false, 3: false, 4: true, 5: false}
	for offset, ok := range want {
		if got := IsBoundary(text, offset); got != ok {
			t.Errorf("IsBoundary(%d) = %v, want %v", offset, got, ok)
		}
	}
}

func TestCRLFIsOneCluster(t *testing.T) {
	if got := Count("a\r\nb"); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if IsBoundary("a\r\nb", 2) {
		t.Error("offset between CR and LF should not be a boundary")
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"abc", 3},
		{"日本", 4},
		{eAcute, 1},
		{family, 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Width(tt.text); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestBoundariesAndTruncate(t *testing.T) {
	text := "a" + eAcute + "b"
	b := Boundaries(text)
	want := []int{0, 1, 4, 5}
	if len(b) != len(want) {
		t.Fatalf("Boundaries = %v, want %v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("Boundaries = %v, want %v", b, want)
		}
	}
	if got := Truncate(text, 2); got != "a"+eAcute {
		t.Errorf("Truncate(2) = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate past end = %q", got)
	}
}

func TestClassifiers(t *testing.T) {
	if !IsSpace("\t") || IsSpace("a") || IsSpace("") {
		t.Fatal("IsSpace misclassified")
	}
	if !IsPunct("!") || IsPunct("a") {
		t.Fatal("IsPunct misclassified")
	}
	if ClassOf("x") != ClassWord || ClassOf(" ") != ClassSpace || ClassOf(",") != ClassPunct {
		t.Fatal("ClassOf misclassified")
	}
}
