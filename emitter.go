package realtimews

import "sync"

// EventAll is the discriminant under which every successfully parsed inbound
// event is emitted, before its type-specific emission.
const EventAll = "event"

type listener struct {
	id   uint64
	fn   func(ServerEvent)
	once bool
}

type errorListener struct {
	id uint64
	fn func(*RealtimeError)
}

// Emitter is a subscription registry mapping a discriminant (EventAll or a
// ServerEventType) to listeners, plus a separate list of error listeners.
// The zero value is ready to use. Listeners are called synchronously, in
// registration order, without the registry lock held; they may subscribe or
// unsubscribe from inside a callback.
type Emitter struct {
	mu        sync.RWMutex
	seq       uint64
	listeners map[string][]listener
	onError   []errorListener

	// logger receives errors reported while no error listener is bound.
	logger *Logger
}

// On registers fn for kind and returns a function that removes it.
// Server "error" events are never emitted under their type; use OnError.
func (e *Emitter) On(kind string, fn func(ServerEvent)) (off func()) {
	return e.add(kind, fn, false)
}

// Once is like On, but fn is removed after its first call.
func (e *Emitter) Once(kind string, fn func(ServerEvent)) (off func()) {
	return e.add(kind, fn, true)
}

// OnEvent registers fn for every parsed inbound event.
func (e *Emitter) OnEvent(fn func(ServerEvent)) (off func()) {
	return e.add(EventAll, fn, false)
}

// OnError registers fn for reported errors: server error events, unparseable
// frames, socket failures, and failed sends and closes.
func (e *Emitter) OnError(fn func(*RealtimeError)) (off func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	id := e.seq
	e.onError = append(e.onError, errorListener{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.onError {
			if l.id == id {
				e.onError = append(e.onError[:i:i], e.onError[i+1:]...)
				return
			}
		}
	}
}

// Subscribe registers a typed listener for the server event type T:
//
//	realtimews.Subscribe(conn, func(e realtimews.ResponseTextDelta) { ... })
//
// T must be one of the value types in events.go other than UnknownEvent and
// ErrorEvent; unknown types are observable through OnEvent, errors through OnError.
func Subscribe[T ServerEvent](src interface{ Events() *Emitter }, fn func(T)) (off func()) {
	var zero T
	return src.Events().On(string(zero.EventType()), func(ev ServerEvent) {
		if t, ok := ev.(T); ok {
			fn(t)
		}
	})
}

// Events returns e itself so an *Emitter can be passed to Subscribe.
func (e *Emitter) Events() *Emitter { return e }

// ListenerCount returns the number of listeners registered for kind.
func (e *Emitter) ListenerCount(kind string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[kind])
}

// HasErrorListener reports whether any error listener is registered.
func (e *Emitter) HasErrorListener() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.onError) > 0
}

func (e *Emitter) add(kind string, fn func(ServerEvent), once bool) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]listener)
	}
	e.seq++
	id := e.seq
	e.listeners[kind] = append(e.listeners[kind], listener{id: id, fn: fn, once: once})
	return func() { e.remove(kind, id) }
}

func (e *Emitter) remove(kind string, id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls := e.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			ls = append(ls[:i:i], ls[i+1:]...)
			if len(ls) == 0 {
				delete(e.listeners, kind)
			} else {
				e.listeners[kind] = ls
			}
			return true
		}
	}
	return false
}

// emit calls every listener registered for kind with ev.
func (e *Emitter) emit(kind string, ev ServerEvent) {
	e.mu.RLock()
	snapshot := append([]listener(nil), e.listeners[kind]...)
	e.mu.RUnlock()

	for _, l := range snapshot {
		// A once listener fires only if this call is the one that removed it.
		if l.once && !e.remove(kind, l.id) {
			continue
		}
		l.fn(ev)
	}
}

// reportError delivers an error to error listeners. With none bound, the
// error is logged so it is not lost silently.
func (e *Emitter) reportError(event *ErrorEvent, message string, cause error) {
	rerr := newRealtimeError(event, message, cause)

	e.mu.RLock()
	snapshot := append([]errorListener(nil), e.onError...)
	logger := e.logger
	e.mu.RUnlock()

	if len(snapshot) == 0 {
		if logger == nil {
			logger = DefaultLogger
		}
		fields := map[string]any{
			"error": rerr.Message,
			"hint":  "bind an error listener with OnError to handle these errors",
		}
		if cause != nil {
			fields["cause"] = cause.Error()
		}
		logger.Error("unhandled_error", fields)
		return
	}
	for _, l := range snapshot {
		l.fn(rerr)
	}
}
