package store

import (
	"sync/atomic"

	"ai-reportgen-be/pkg/document"
)

// Session is the live editing state for one open document. The controller
// owns the text, render output and table toggles; the session adds ownership
// and the export in-flight guard.
type Session struct {
	ID         string `json:"id"` // Document ID
	UserID     string `json:"user_id"`
	Controller *document.Controller

	exporting atomic.Bool
}

// BeginExport claims the export slot. Returns false when another export for
// this session is still in flight.
func (s *Session) BeginExport() bool {
	return s.exporting.CompareAndSwap(false, true)
}

// EndExport releases the export slot.
func (s *Session) EndExport() {
	s.exporting.Store(false)
}
