// Package event provides the synchronous subscribe/unsubscribe/emit
// primitive the composition core is built on. Dispatch is immediate and
// in subscription order: every registry, hierarchy, and selection
// mutation completes before control returns to the caller, so events must
// be delivered inline rather than queued for a later tick.
package event

// Subscription identifies one registered handler for later removal.
type Subscription struct {
	name string
	id   int
}

type handler struct {
	id int
	fn func(payload any)
}

// Emitter dispatches named events to subscribed handlers. The zero value
// is ready to use, so it can be embedded directly. Not safe for
// concurrent use; handlers must not mutate the structure being multicast
// (re-entrancy is undefined by convention).
type Emitter struct {
	handlers map[string][]handler
	nextID   int
}

// On registers fn for events named name.
func (e *Emitter) On(name string, fn func(payload any)) Subscription {
	if e.handlers == nil {
		e.handlers = make(map[string][]handler, 4)
	}
	e.nextID++
	e.handlers[name] = append(e.handlers[name], handler{id: e.nextID, fn: fn})
	return Subscription{name: name, id: e.nextID}
}

// Off removes a previously registered handler. Removing a handler twice
// is a no-op.
func (e *Emitter) Off(sub Subscription) {
	list := e.handlers[sub.name]
	for i, h := range list {
		if h.id == sub.id {
			e.handlers[sub.name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Emit synchronously delivers payload to every handler registered for
// name, in subscription order. The handler list is snapshotted first so
// handlers may subscribe or unsubscribe during dispatch.
func (e *Emitter) Emit(name string, payload any) {
	list := e.handlers[name]
	if len(list) == 0 {
		return
	}
	snapshot := make([]handler, len(list))
	copy(snapshot, list)
	for _, h := range snapshot {
		h.fn(payload)
	}
}
