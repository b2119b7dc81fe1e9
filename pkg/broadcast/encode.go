package broadcast

import (
	"fmt"
	"time"

	"github.com/leaudio-protocol/leaudio-go/pkg/base"
	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

// GetBase encodes the source's Broadcast Audio Source Endpoint structure
// into buf, appending to any content already present. The source must be
// configured; the encoding reflects the current subgroup configurations,
// metadata and creation-time BIS overrides. A buffer too small for the
// encoding yields base.ErrBufferFull with buf contents unspecified.
func (s *Source) GetBase(buf *base.Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: buffer is nil", ErrInvalidParam)
	}

	m := s.mgr
	m.mu.Lock()
	defer m.mu.Unlock()

	if st := s.stateLocked(); st == StateIdle {
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}

	if buf.Room() < base.MinimumSize {
		return fmt.Errorf("%w: room %d < minimum %d",
			base.ErrBufferFull, buf.Room(), base.MinimumSize)
	}

	if err := s.encodeBaseLocked(buf); err != nil {
		return err
	}

	streams := len(s.streamData)
	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		SourceID:  s.id,
		Layer:     log.LayerBase,
		Category:  log.CategoryEncode,
		Encode: &log.EncodeEvent{
			Subgroups: len(s.subgroups),
			Streams:   streams,
			Size:      buf.Len(),
			Capacity:  buf.Cap(),
		},
	})

	return nil
}

// encodeBaseLocked writes the BASE wire image. Caller holds mgr.mu.
func (s *Source) encodeBaseLocked(buf *base.Buffer) error {
	if err := buf.AddLE16(base.ServiceUUID); err != nil {
		return err
	}
	if err := buf.AddLE24(s.qos.PresentationDelayUs); err != nil {
		return err
	}
	if err := buf.AddU8(uint8(len(s.subgroups))); err != nil {
		return err
	}

	// BIS indices are 1-based and count monotonically across all
	// subgroups of the source.
	bisIndex := uint8(0)
	ordinal := 0
	for _, sg := range s.subgroups {
		if err := s.encodeSubgroupLocked(buf, sg, &bisIndex, &ordinal); err != nil {
			return err
		}
	}

	return nil
}

func (s *Source) encodeSubgroupLocked(buf *base.Buffer, sg *Subgroup, bisIndex *uint8, ordinal *int) error {
	cfg := sg.codecCfg

	if err := buf.AddU8(uint8(len(sg.streams))); err != nil {
		return err
	}
	if err := buf.AddU8(cfg.ID); err != nil {
		return err
	}
	if err := buf.AddLE16(cfg.CompanyID); err != nil {
		return err
	}
	if err := buf.AddLE16(cfg.VendorID); err != nil {
		return err
	}
	if err := buf.AddU8(uint8(len(cfg.Data))); err != nil {
		return err
	}
	if err := buf.AddMem(cfg.Data); err != nil {
		return err
	}
	if err := buf.AddU8(uint8(len(cfg.Metadata))); err != nil {
		return err
	}
	if err := buf.AddMem(cfg.Metadata); err != nil {
		return err
	}

	for range sg.streams {
		data := s.streamData[*ordinal]
		*ordinal++
		*bisIndex++

		if err := buf.AddU8(*bisIndex); err != nil {
			return err
		}
		if err := buf.AddU8(uint8(len(data))); err != nil {
			return err
		}
		if err := buf.AddMem(data); err != nil {
			return err
		}
	}

	return nil
}
