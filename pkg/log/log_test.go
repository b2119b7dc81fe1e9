package log

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func sampleEvent() Event {
	reason := uint8(0x16)
	return Event{
		Timestamp: time.Now().UTC(),
		SourceID:  "5f0c1e7a-0000-4000-8000-000000000001",
		Layer:     LayerBroadcast,
		Category:  CategoryTransport,
		Transport: &TransportEvent{
			Kind:   TransportBigStopped,
			BigID:  "big-1",
			Reason: &reason,
		},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := sampleEvent()

	data, err := EncodeEventBytes(event)
	if err != nil {
		t.Fatalf("EncodeEventBytes failed: %v", err)
	}

	got, err := DecodeEventBytes(data)
	if err != nil {
		t.Fatalf("DecodeEventBytes failed: %v", err)
	}

	if got.SourceID != event.SourceID {
		t.Errorf("SourceID = %q, want %q", got.SourceID, event.SourceID)
	}
	if got.Layer != LayerBroadcast {
		t.Errorf("Layer = %v, want %v", got.Layer, LayerBroadcast)
	}
	if got.Transport == nil {
		t.Fatal("Transport payload missing after decode")
	}
	if got.Transport.Kind != TransportBigStopped {
		t.Errorf("Kind = %v, want %v", got.Transport.Kind, TransportBigStopped)
	}
	if got.Transport.Reason == nil || *got.Transport.Reason != 0x16 {
		t.Errorf("Reason = %v, want 0x16", got.Transport.Reason)
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.blog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(sampleEvent())
	logger.Log(Event{
		Timestamp: time.Now().UTC(),
		Layer:     LayerBase,
		Category:  CategoryEncode,
		Encode:    &EncodeEvent{Subgroups: 2, Streams: 4, Size: 40, Capacity: 64},
	})

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Log after close is silently ignored
	logger.Log(sampleEvent())

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Encode == nil || events[1].Encode.Streams != 4 {
		t.Errorf("second event encode payload = %+v, want 4 streams", events[1].Encode)
	}
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.blog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(sampleEvent())
	logger.Log(Event{
		Timestamp: time.Now().UTC(),
		Layer:     LayerBase,
		Category:  CategoryEncode,
		Encode:    &EncodeEvent{Size: 16, Capacity: 16},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	layer := LayerBase
	reader, err := NewFilteredReader(path, Filter{Layer: &layer})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Layer != LayerBase {
		t.Errorf("Layer = %v, want %v", events[0].Layer, LayerBase)
	}

	// Exhausted reader returns io.EOF
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next after exhaustion = %v, want io.EOF", err)
	}
}

func TestMultiLogger(t *testing.T) {
	var first, second recordingLogger

	multi := NewMultiLogger(&first, &second)
	multi.Log(sampleEvent())
	multi.Log(sampleEvent())

	if len(first.events) != 2 || len(second.events) != 2 {
		t.Errorf("events = %d/%d, want 2/2", len(first.events), len(second.events))
	}
}

func TestSlogAdapter(t *testing.T) {
	buf := new(bytes.Buffer)
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	adapter := NewSlogAdapter(slog.New(handler))
	adapter.Log(sampleEvent())

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("BIG_STOPPED")) {
		t.Errorf("slog output missing transport kind: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("BROADCAST")) {
		t.Errorf("slog output missing layer: %q", out)
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{LayerIso.String(), "ISO"},
		{LayerBase.String(), "BASE"},
		{LayerBroadcast.String(), "BROADCAST"},
		{Layer(99).String(), "UNKNOWN"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{StateEntityEndpoint.String(), "ENDPOINT"},
		{StateEntitySource.String(), "SOURCE"},
		{TransportBigCreate.String(), "BIG_CREATE"},
		{TransportChannelSent.String(), "CHANNEL_SENT"},
		{TransportEventKind(99).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

// recordingLogger captures events for assertions.
type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}
