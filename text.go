package realtimews

import "sync"

// TextAssembler collects response.text.delta chunks per response ID.
type TextAssembler struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewTextAssembler creates a new TextAssembler instance.
func NewTextAssembler() *TextAssembler { return &TextAssembler{data: make(map[string][]byte)} }

// OnDelta appends the text delta.
func (t *TextAssembler) OnDelta(e ResponseTextDelta) {
	t.mu.Lock()
	t.data[e.ResponseID] = append(t.data[e.ResponseID], e.Delta...)
	t.mu.Unlock()
}

// OnDone returns the full text for a response and forgets it. The server's
// complete text wins over the assembled deltas when present.
func (t *TextAssembler) OnDone(e ResponseTextDone) string {
	t.mu.Lock()
	buf := t.data[e.ResponseID]
	delete(t.data, e.ResponseID)
	t.mu.Unlock()
	if e.Text != "" {
		return e.Text
	}
	return string(buf)
}

// CollectText subscribes an assembler to src and calls fn with each completed text.
func CollectText(src interface{ Events() *Emitter }, fn func(e ResponseTextDone, text string)) (off func()) {
	t := NewTextAssembler()
	offDelta := Subscribe(src, t.OnDelta)
	offDone := Subscribe(src, func(e ResponseTextDone) { fn(e, t.OnDone(e)) })
	return func() { offDelta(); offDone() }
}
