package search

import "testing"

type fakeRows struct{ lines []string }

func (f *fakeRows) NumRows() int          { return len(f.lines) }
func (f *fakeRows) RowBytes(i int) []byte { return []byte(f.lines[i]) }

func TestCompileDefaultsCaseInsensitive(t *testing.T) {
	re, err := Compile("hello")
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("HELLO world") {
		t.Fatal("expected case-insensitive match")
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := Compile("(unterminated"); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestSessionForwardFindsLaterRow(t *testing.T) {
	src := &fakeRows{lines: []string{"alpha", "beta", "gamma"}}
	re, _ := Compile("gamma")
	s := NewSession(src, re, Forward, 0)
	m, ok := s.Step()
	if !ok || m.Row != 2 {
		t.Fatalf("got match=%+v ok=%v", m, ok)
	}
}

func TestSessionBackwardWrap(t *testing.T) {
	src := &fakeRows{lines: []string{"alpha", "beta", "gamma"}}
	re, _ := Compile("beta")
	s := NewSession(src, re, Backward, 0)
	m, ok := s.Step()
	if !ok || m.Row != 1 {
		t.Fatalf("got match=%+v ok=%v", m, ok)
	}
}

func TestSessionNoMatchVisitsEveryRow(t *testing.T) {
	src := &fakeRows{lines: []string{"a", "b", "c"}}
	re, _ := Compile("zzz")
	s := NewSession(src, re, Forward, 0)
	_, ok := s.Step()
	if ok {
		t.Fatal("expected no match")
	}
	if len(s.Visited()) != 4 { // start row + 3 stepped rows
		t.Fatalf("got %d visited rows", len(s.Visited()))
	}
}

func TestSessionEmptySource(t *testing.T) {
	src := &fakeRows{}
	re, _ := Compile("x")
	s := NewSession(src, re, Forward, 0)
	if _, ok := s.Step(); ok {
		t.Fatal("expected no match on empty source")
	}
}

func TestMatchReportsByteOffsetAndGroups(t *testing.T) {
	src := &fakeRows{lines: []string{"foo=bar"}}
	re, _ := Compile(`(\w+)=(\w+)`)
	s := NewSession(src, re, Forward, len(src.lines)-1) // wraps to row 0
	m, ok := s.Step()
	if !ok || m.Row != 0 || m.MatchIdx != 0 || m.MatchLen != 7 {
		t.Fatalf("got %+v ok=%v", m, ok)
	}
	if string(m.Groups[1]) != "foo" || string(m.Groups[2]) != "bar" {
		t.Fatalf("got groups %v", m.Groups)
	}
}

func TestCurWordFindsWordAfterOffset(t *testing.T) {
	row := []byte("  hello_world next")
	if got := CurWord(row, 0); got != "hello_world" {
		t.Fatalf("got %q", got)
	}
}

func TestCurWordNoWordReturnsEmpty(t *testing.T) {
	row := []byte("   ")
	if got := CurWord(row, 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandReplacementAmpersandAndBackrefs(t *testing.T) {
	groups := [][]byte{[]byte("foo=bar"), []byte("foo"), []byte("bar")}
	got := ExpandReplacement(`[\1:\2] (&)`, groups)
	want := "[foo:bar] (foo=bar)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandReplacementLiteralSpaceAndBackslash(t *testing.T) {
	got := ExpandReplacement(`a\sb\\c`, nil)
	want := `a b\c`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPlanRowAndApplyPlans(t *testing.T) {
	re, _ := Compile(`\d+`)
	row := []byte("x1 y22 z3")
	plans := PlanRow(re, row, "[&]", 0)
	if len(plans) != 3 {
		t.Fatalf("got %d plans", len(plans))
	}
	out := ApplyPlans(row, plans)
	want := "x[1] y[22] z[3]"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPlanRowNoMatches(t *testing.T) {
	re, _ := Compile(`\d+`)
	row := []byte("no digits here")
	plans := PlanRow(re, row, "X", 0)
	if plans != nil {
		t.Fatalf("got %v", plans)
	}
	if out := ApplyPlans(row, plans); string(out) != string(row) {
		t.Fatalf("got %q", out)
	}
}
