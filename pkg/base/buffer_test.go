package base

import (
	"bytes"
	"errors"
	"testing"
)

func TestBufferWriters(t *testing.T) {
	buf := NewBuffer(16)

	if err := buf.AddLE16(ServiceUUID); err != nil {
		t.Fatalf("AddLE16 failed: %v", err)
	}
	if err := buf.AddLE24(40000); err != nil {
		t.Fatalf("AddLE24 failed: %v", err)
	}
	if err := buf.AddU8(1); err != nil {
		t.Fatalf("AddU8 failed: %v", err)
	}
	if err := buf.AddMem([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("AddMem failed: %v", err)
	}

	want := []byte{
		0x51, 0x18, // 0x1851 little-endian
		0x40, 0x9C, 0x00, // 40000 little-endian 24-bit
		0x01,
		0xAA, 0xBB,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", buf.Bytes(), want)
	}
	if buf.Len() != 8 || buf.Room() != 8 || buf.Cap() != 16 {
		t.Errorf("Len/Room/Cap = %d/%d/%d, want 8/8/16", buf.Len(), buf.Room(), buf.Cap())
	}
}

func TestBufferOverflow(t *testing.T) {
	buf := NewBuffer(3)

	if err := buf.AddLE16(1); err != nil {
		t.Fatalf("AddLE16 failed: %v", err)
	}

	if err := buf.AddLE16(2); !errors.Is(err, ErrBufferFull) {
		t.Errorf("AddLE16 = %v, want ErrBufferFull", err)
	}
	if err := buf.AddLE24(3); !errors.Is(err, ErrBufferFull) {
		t.Errorf("AddLE24 = %v, want ErrBufferFull", err)
	}
	if err := buf.AddMem([]byte{1, 2}); !errors.Is(err, ErrBufferFull) {
		t.Errorf("AddMem = %v, want ErrBufferFull", err)
	}

	// One octet of room remains
	if err := buf.AddU8(9); err != nil {
		t.Fatalf("AddU8 failed: %v", err)
	}
	if err := buf.AddU8(10); !errors.Is(err, ErrBufferFull) {
		t.Errorf("AddU8 = %v, want ErrBufferFull", err)
	}
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer(4)
	_ = buf.AddLE16(0x1234)

	buf.Reset()

	if buf.Len() != 0 || buf.Room() != 4 {
		t.Errorf("after Reset: Len=%d Room=%d, want 0/4", buf.Len(), buf.Room())
	}
}

func TestBufferEmptyMem(t *testing.T) {
	buf := NewBuffer(0)

	if err := buf.AddMem(nil); err != nil {
		t.Errorf("AddMem(nil) = %v, want nil", err)
	}
}
