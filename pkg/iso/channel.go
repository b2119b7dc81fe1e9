package iso

import (
	"github.com/google/uuid"

	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// TxQoS is the transmit QoS of an isochronous channel, the transport-level
// subset of the generic QoS parameters.
type TxQoS struct {
	// SDU is the maximum SDU size in octets.
	SDU uint16

	// PHY is the radio PHY.
	PHY qos.PHY

	// RTN is the retransmission number.
	RTN uint8
}

// FromQoS translates generic QoS parameters into transport QoS.
func FromQoS(c *qos.Config) TxQoS {
	return TxQoS{
		SDU: c.SDU,
		PHY: c.PHY,
		RTN: c.RTN,
	}
}

// ChannelOps are the callbacks a channel owner registers to observe channel
// lifecycle. Any callback may be nil.
type ChannelOps struct {
	// Connected is called when the channel is established.
	Connected func(*Channel)

	// Disconnected is called when the channel is torn down, with the
	// transport reason code.
	Disconnected func(*Channel, uint8)

	// Sent is called when an SDU transmission completes.
	Sent func(*Channel)
}

// Channel is one isochronous channel, created fresh per broadcast stream.
type Channel struct {
	id         string
	ops        *ChannelOps
	txQoS      TxQoS
	attachment any
}

// NewChannel creates a channel with the given callbacks.
func NewChannel(ops *ChannelOps) *Channel {
	return &Channel{
		id:  uuid.New().String(),
		ops: ops,
	}
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() string {
	return c.id
}

// SetTxQoS sets the transmit QoS applied when the channel is established.
func (c *Channel) SetTxQoS(q TxQoS) {
	c.txQoS = q
}

// TxQoS returns the configured transmit QoS.
func (c *Channel) TxQoS() TxQoS {
	return c.txQoS
}

// Bind attaches the owning container to the channel. The broadcast layer
// uses this to translate a channel back to its endpoint.
func (c *Channel) Bind(attachment any) {
	c.attachment = attachment
}

// Unbind detaches the owning container.
func (c *Channel) Unbind() {
	c.attachment = nil
}

// Attachment returns the owning container bound to the channel, or nil.
func (c *Channel) Attachment() any {
	return c.attachment
}

// NotifyConnected delivers a connected event to the channel owner.
// Called by transport implementations.
func (c *Channel) NotifyConnected() {
	if c.ops != nil && c.ops.Connected != nil {
		c.ops.Connected(c)
	}
}

// NotifyDisconnected delivers a disconnected event to the channel owner.
// Called by transport implementations.
func (c *Channel) NotifyDisconnected(reason uint8) {
	if c.ops != nil && c.ops.Disconnected != nil {
		c.ops.Disconnected(c, reason)
	}
}

// NotifySent delivers an SDU-sent event to the channel owner.
// Called by transport implementations.
func (c *Channel) NotifySent() {
	if c.ops != nil && c.ops.Sent != nil {
		c.ops.Sent(c)
	}
}
