package broadcast

// newEndpoint returns a free endpoint from the per-source pool, or nil
// when the pool is exhausted. Caller holds m.mu.
func (m *Manager) newEndpoint(sourceIndex int) *Endpoint {
	for i := range m.endpoints[sourceIndex] {
		ep := &m.endpoints[sourceIndex][i]
		if ep.stream == nil {
			ep.reset()
			return ep
		}
	}

	return nil
}

// newSubgroup returns a free subgroup from the per-source pool, or nil
// when the pool is exhausted. Caller holds m.mu.
func (m *Manager) newSubgroup(sourceIndex int) *Subgroup {
	for i := range m.subgroups[sourceIndex] {
		sg := &m.subgroups[sourceIndex][i]
		if len(sg.streams) == 0 {
			sg.reset()
			return sg
		}
	}

	return nil
}

// newSource returns a free source slot, or nil when all slots are in
// use. Caller holds m.mu.
func (m *Manager) newSource() *Source {
	for i := range m.sources {
		s := &m.sources[i]
		if len(s.subgroups) == 0 {
			return s
		}
	}

	return nil
}
