package tracelog

import "testing"

func TestWriteReadIsAlwaysZero(t *testing.T) {
	b := New()
	b.Write(Base, 0xFF)

	if got := b.Read(Base); got != 0 {
		t.Errorf("Read(Base) = 0x%02x, want 0 (write-only device)", got)
	}
}

func TestWriteOutsideRangeDropped(t *testing.T) {
	b := New()
	b.Write(Base-1, 0xAB)
	b.Write(Base+Size, 0xAB)

	// Nothing to assert directly since reads are always zero; this
	// just exercises the bounds check without panicking.
}

func TestStatusCodeAndRunning(t *testing.T) {
	b := New()
	b.Write(Base, StatusRunning)
	if !b.Running() {
		t.Error("Running() = false with status byte 0x80, want true")
	}

	b.Write(Base, 0x00)
	if b.Running() {
		t.Error("Running() = true with status byte 0x00 (pass code), want false")
	}
	if got := b.StatusCode(); got != 0x00 {
		t.Errorf("StatusCode() = 0x%02x, want 0x00", got)
	}
}

func TestMessage(t *testing.T) {
	b := New()
	msg := "Passed"
	for i, ch := range []byte(msg) {
		b.Write(uint16(Base+messageOffset+i), ch)
	}

	if got := b.Message(); got != msg {
		t.Errorf("Message() = %q, want %q", got, msg)
	}
}
