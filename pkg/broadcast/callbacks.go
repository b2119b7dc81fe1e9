package broadcast

// Callbacks receive broadcast source lifecycle events. Register the same
// value once; the pointer identity is the registration key.
type Callbacks struct {
	// Started is called when the source's BIG has been established.
	Started func(*Source)

	// Stopped is called when the source's BIG has been terminated, with
	// the transport reason code.
	Stopped func(*Source, uint8)
}

// RegisterCallbacks adds a lifecycle listener. The first registration
// hooks the manager into the transport's BIG event delivery.
func (m *Manager) RegisterCallbacks(cb *Callbacks) error {
	if cb == nil {
		return ErrInvalidParam
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.listeners {
		if existing == cb {
			return ErrCallbacksRegistered
		}
	}

	if !m.observerRegistered {
		if err := m.transport.RegisterObserver(m); err != nil {
			return err
		}
		m.observerRegistered = true
	}

	m.listeners = append(m.listeners, cb)
	return nil
}

// UnregisterCallbacks removes a previously registered lifecycle listener.
func (m *Manager) UnregisterCallbacks(cb *Callbacks) error {
	if cb == nil {
		return ErrInvalidParam
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.listeners {
		if existing == cb {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return nil
		}
	}

	return ErrCallbacksNotRegistered
}
