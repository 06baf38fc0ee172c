package overflow

// Notification describes the outcome of one recomputation.
type Notification struct {
	// HiddenCount is len(HiddenItems).
	HiddenCount int

	// HiddenItems are the refs of hidden items in packing order.
	HiddenItems []ItemRef

	// Overflowing is true iff at least one item is hidden.
	Overflowing bool
}

// Unbind is a handle to remove a binding. Call it to prevent
// future callback invocations for the associated binding.
type Unbind func()

// binding represents a registered callback that fires after each
// recomputation.
type binding struct {
	id     uint64
	fn     func(Notification)
	active bool
}

// notifier fans a Notification out to its bindings in registration order.
type notifier struct {
	bindings []*binding
	nextID   uint64
}

func (n *notifier) bind(fn func(Notification)) Unbind {
	n.nextID++
	b := &binding{id: n.nextID, fn: fn, active: true}
	n.bindings = append(n.bindings, b)
	return func() {
		b.active = false
	}
}

// emit calls every active binding once. Bindings removed during emit do not
// fire for later notifications.
func (n *notifier) emit(note Notification) {
	active := n.bindings[:0]
	for _, b := range n.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	n.bindings = active

	// Copy so bindings added by a callback wait for the next notification.
	snapshot := make([]*binding, len(active))
	copy(snapshot, active)
	for _, b := range snapshot {
		if b.active {
			b.fn(note)
		}
	}
}

func (n *notifier) clear() {
	for _, b := range n.bindings {
		b.active = false
	}
	n.bindings = nil
}
