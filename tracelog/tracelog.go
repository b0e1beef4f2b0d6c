// Package tracelog implements the diagnostic-ROM write window many
// test ROMs (including nestest and the blargg test suite) use to
// report results back to whatever is driving the emulator: a status
// byte at 0x6000 and a NUL-terminated ASCII message starting at
// 0x6004, both reachable over the normal CPU bus.
package tracelog

const (
	// Base is the first CPU-bus address the buffer answers.
	Base = 0x6000
	// Size is the buffer's fixed capacity; writes past the end are
	// dropped rather than wrapping.
	Size = 0x1000

	statusOffset  = 0x00
	messageOffset = 0x04

	// StatusRunning is the value blargg-style test ROMs leave at
	// Base while the test is still executing.
	StatusRunning = 0x80
)

// Buffer captures CPU writes to [Base, Base+Size) for later
// inspection by a test harness. It implements no read-modify-write
// behavior of its own: reads always return 0, matching hardware that
// has no listener wired to this address range.
type Buffer struct {
	bytes [Size]uint8
}

// New returns an empty capture buffer.
func New() *Buffer {
	return &Buffer{}
}

// Write records a CPU write to addr, which must fall in [Base,
// Base+Size). Writes outside that range, or past the end of the
// buffer, are silently dropped.
func (b *Buffer) Write(addr uint16, val uint8) {
	off := int(addr) - Base
	if off < 0 || off >= Size {
		return
	}
	b.bytes[off] = val
}

// Read always returns 0: this is a write-only device.
func (b *Buffer) Read(addr uint16) uint8 {
	return 0
}

// StatusCode returns the byte a diagnostic ROM leaves at Base, which
// is 0x80 while running and the test's final result code once done.
func (b *Buffer) StatusCode() uint8 {
	return b.bytes[statusOffset]
}

// Running reports whether the test ROM has not yet reached a final
// status code.
func (b *Buffer) Running() bool {
	return b.StatusCode() == StatusRunning
}

// Message returns the NUL-terminated ASCII string the test ROM wrote
// starting at Base+0x04, without the terminator.
func (b *Buffer) Message() string {
	for i := messageOffset; i < Size; i++ {
		if b.bytes[i] == 0 {
			return string(b.bytes[messageOffset:i])
		}
	}
	return string(b.bytes[messageOffset:])
}
