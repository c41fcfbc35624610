package document

import "strings"

// FindResult reports the state of the find session after an operation:
// how many matches exist and which one is active. Current is -1 when the
// session has no matches.
type FindResult struct {
	Term    string `json:"term"`
	Count   int    `json:"count"`
	Current int    `json:"current"`
}

// findSession tracks the active needle and its byte-offset matches. Offsets
// are recomputed from scratch after every mutation; they are never patched,
// since a single replacement shifts everything after it.
type findSession struct {
	term    string
	matches []int
	current int
}

func (f *findSession) research(text string) {
	if f.term == "" {
		return
	}
	f.matches = findAll(text, f.term)
	if len(f.matches) == 0 {
		f.current = -1
	} else {
		f.current = 0
	}
}

func (f *findSession) result() FindResult {
	return FindResult{Term: f.term, Count: len(f.matches), Current: f.current}
}

// findAll returns the byte offsets of every non-overlapping occurrence of
// term in text, left to right, case-sensitive.
func findAll(text, term string) []int {
	if term == "" {
		return nil
	}
	var offs []int
	start := 0
	for {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return offs
		}
		offs = append(offs, start+i)
		start += i + len(term)
	}
}

// Find starts a find session over the current text. An empty term clears
// the session.
func (c *Controller) Find(term string) FindResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.find.term = term
	if term == "" {
		c.find.matches = nil
		c.find.current = -1
		return c.find.result()
	}
	c.find.research(c.text)
	return c.find.result()
}

// FindNext advances the active match, wrapping around at the end.
func (c *Controller) FindNext() FindResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.find.matches); n > 0 {
		c.find.current = (c.find.current + 1) % n
	}
	return c.find.result()
}

// FindPrevious steps back to the previous match, wrapping around at the
// start.
func (c *Controller) FindPrevious() FindResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.find.matches); n > 0 {
		c.find.current = (c.find.current - 1 + n) % n
	}
	return c.find.result()
}

// ReplaceCurrent substitutes only the active match, then rebuilds the match
// list against the shifted text. The active index lands on the match that
// followed the replaced one. With no matches this is a no-op, not an error.
func (c *Controller) ReplaceCurrent(replacement string) FindResult {
	c.mu.Lock()
	if c.find.term == "" || len(c.find.matches) == 0 {
		out := c.find.result()
		c.mu.Unlock()
		return out
	}
	off := c.find.matches[c.find.current]
	c.text = c.text[:off] + replacement + c.text[off+len(c.find.term):]
	c.dirty = true
	was := c.find.current

	c.find.matches = findAll(c.text, c.find.term)
	if n := len(c.find.matches); n == 0 {
		c.find.current = -1
	} else {
		c.find.current = was % n
	}
	if c.mode == ModePreview {
		c.renderLocked()
	} else {
		c.unmountLocked()
	}
	out := c.find.result()
	text := c.text
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeReplace, Text: text})
	return out
}

// ReplaceAll substitutes every match in one pass and clears the match
// state. Returns how many replacements were made; zero matches is a no-op.
func (c *Controller) ReplaceAll(replacement string) (int, FindResult) {
	c.mu.Lock()
	n := len(c.find.matches)
	if c.find.term == "" || n == 0 {
		out := c.find.result()
		c.mu.Unlock()
		return 0, out
	}
	c.text = strings.ReplaceAll(c.text, c.find.term, replacement)
	c.dirty = true
	c.find.matches = nil
	c.find.current = -1
	if c.mode == ModePreview {
		c.renderLocked()
	} else {
		c.unmountLocked()
	}
	out := c.find.result()
	text := c.text
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeReplace, Text: text})
	return n, out
}
