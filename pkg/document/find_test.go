package document

import (
	"reflect"
	"testing"
)

func TestFindComputesOffsets(t *testing.T) {
	c := newTestController(t, "the cat sat on the mat")
	res := c.Find("the")
	if res.Count != 2 || res.Current != 0 {
		t.Errorf("Find(the) = %+v, want count 2 current 0", res)
	}
	if got := findAll("the cat sat on the mat", "the"); !reflect.DeepEqual(got, []int{0, 15}) {
		t.Errorf("offsets = %v, want [0 15]", got)
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	c := newTestController(t, "Cat cat CAT")
	if res := c.Find("cat"); res.Count != 1 {
		t.Errorf("count = %d, want 1", res.Count)
	}
}

func TestFindNonOverlapping(t *testing.T) {
	if got := findAll("aaaa", "aa"); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("offsets = %v, want [0 2]", got)
	}
}

func TestFindWraparound(t *testing.T) {
	c := newTestController(t, "a b a b a")
	c.Find("a")

	if res := c.FindNext(); res.Current != 1 {
		t.Errorf("next: current = %d, want 1", res.Current)
	}
	c.FindNext()
	if res := c.FindNext(); res.Current != 0 {
		t.Errorf("next should wrap to 0, got %d", res.Current)
	}
	if res := c.FindPrevious(); res.Current != 2 {
		t.Errorf("previous should wrap to 2, got %d", res.Current)
	}
}

func TestFindNoMatches(t *testing.T) {
	c := newTestController(t, "nothing here")
	res := c.Find("zebra")
	if res.Count != 0 || res.Current != -1 {
		t.Errorf("Find(zebra) = %+v, want count 0 current -1", res)
	}

	// Replacement with zero matches is a no-op, not an error.
	c.ReplaceCurrent("x")
	if c.Text() != "nothing here" {
		t.Errorf("ReplaceCurrent mutated text to %q", c.Text())
	}
	if n, _ := c.ReplaceAll("x"); n != 0 {
		t.Errorf("ReplaceAll replaced %d, want 0", n)
	}
	if c.Dirty() {
		t.Error("no-op replaces should not dirty the document")
	}
}

func TestReplaceCurrentMiddleMatch(t *testing.T) {
	c := newTestController(t, "cat cat cat")
	c.Find("cat")
	c.FindNext() // active match is the middle cat

	res := c.ReplaceCurrent("dog")
	if c.Text() != "cat dog cat" {
		t.Fatalf("text = %q, want %q", c.Text(), "cat dog cat")
	}
	if res.Count != 2 {
		t.Errorf("count = %d, want 2", res.Count)
	}
	// The rebuilt list has matches at 0 and 8; the active index lands on
	// the match after the replaced one.
	if res.Current != 1 {
		t.Errorf("current = %d, want 1", res.Current)
	}
}

func TestReplaceCurrentRecomputesShiftedOffsets(t *testing.T) {
	c := newTestController(t, "ab ab ab")
	c.Find("ab")
	res := c.ReplaceCurrent("longer")
	if c.Text() != "longer ab ab" {
		t.Fatalf("text = %q", c.Text())
	}
	if res.Count != 2 || res.Current != 0 {
		t.Errorf("after replace: %+v", res)
	}
	res = c.ReplaceCurrent("x")
	if c.Text() != "longer x ab" {
		t.Errorf("text = %q, want %q", c.Text(), "longer x ab")
	}
	if res.Count != 1 || res.Current != 0 {
		t.Errorf("after second replace: %+v", res)
	}
}

func TestReplaceCurrentLastMatchWraps(t *testing.T) {
	c := newTestController(t, "cat dog cat")
	c.Find("cat")
	c.FindNext() // the trailing cat
	res := c.ReplaceCurrent("bird")
	if c.Text() != "cat dog bird" {
		t.Fatalf("text = %q", c.Text())
	}
	if res.Count != 1 || res.Current != 0 {
		t.Errorf("after replacing the last match: %+v", res)
	}
}

func TestReplaceAll(t *testing.T) {
	c := newTestController(t, "cat cat cat")
	c.Find("cat")
	n, res := c.ReplaceAll("dog")
	if n != 3 {
		t.Errorf("replaced %d, want 3", n)
	}
	if c.Text() != "dog dog dog" {
		t.Errorf("text = %q", c.Text())
	}
	if res.Count != 0 || res.Current != -1 {
		t.Errorf("match state should clear, got %+v", res)
	}
	if !c.Dirty() {
		t.Error("ReplaceAll should dirty the document")
	}
}

func TestSetTextRerunsActiveFind(t *testing.T) {
	c := newTestController(t, "cat")
	c.Find("cat")
	c.SetText("cat cat")
	if res := c.FindNext(); res.Count != 2 || res.Current != 1 {
		t.Errorf("find session should track new text, got %+v", res)
	}
}
