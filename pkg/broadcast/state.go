package broadcast

// EndpointState is the state of a stream endpoint.
type EndpointState uint8

const (
	// StateIdle is the initial state: no configuration applied.
	StateIdle EndpointState = iota

	// StateQoSConfigured means the endpoint carries a QoS configuration
	// but the group is not being established.
	StateQoSConfigured

	// StateEnabling means BIG establishment has been requested.
	StateEnabling

	// StateStreaming means the isochronous channel is connected and
	// audio may be transmitted.
	StateStreaming
)

// String returns the state name.
func (s EndpointState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateQoSConfigured:
		return "QOS_CONFIGURED"
	case StateEnabling:
		return "ENABLING"
	case StateStreaming:
		return "STREAMING"
	default:
		return "UNKNOWN"
	}
}

// validTransition reports whether the source-role endpoint state machine
// permits the transition.
func validTransition(from, to EndpointState) bool {
	switch from {
	case StateIdle:
		return to == StateQoSConfigured
	case StateQoSConfigured:
		return to == StateIdle || to == StateEnabling
	case StateEnabling:
		return to == StateStreaming || to == StateQoSConfigured
	case StateStreaming:
		return to == StateQoSConfigured
	default:
		return false
	}
}
