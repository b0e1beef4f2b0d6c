package mos6502

import (
	"strings"
	"testing"
)

func TestDisassembleImmediate(t *testing.T) {
	c, b := newTestCPU(0x8000)
	b.mem[0x8000] = 0xA9 // LDA #$42
	b.mem[0x8001] = 0x42
	c.SetPC(0x8000)

	if got, want := c.Disassemble(), "LDA #$42"; got != want {
		t.Errorf("Disassemble() = %q, want %q", got, want)
	}
}

func TestDisassembleAbsolute(t *testing.T) {
	c, b := newTestCPU(0x8000)
	b.mem[0x8000] = 0x4C // JMP $C5F5
	b.mem[0x8001] = 0xF5
	b.mem[0x8002] = 0xC5
	c.SetPC(0x8000)

	if got, want := c.Disassemble(), "JMP $C5F5"; got != want {
		t.Errorf("Disassemble() = %q, want %q", got, want)
	}
}

func TestDisassembleRelativeResolvesTarget(t *testing.T) {
	c, b := newTestCPU(0x8000)
	b.mem[0x8000] = 0x90 // BCC *+0x10
	b.mem[0x8001] = 0x10
	c.SetPC(0x8000)

	// Relative targets are PC-after-instruction (0x8002) + offset.
	if got, want := c.Disassemble(), "BCC $8012"; got != want {
		t.Errorf("Disassemble() = %q, want %q", got, want)
	}
}

func TestDisassembleImplicit(t *testing.T) {
	c, b := newTestCPU(0x8000)
	b.mem[0x8000] = 0x18 // CLC
	c.SetPC(0x8000)

	if got, want := c.Disassemble(), "CLC"; got != want {
		t.Errorf("Disassemble() = %q, want %q", got, want)
	}
}

func TestTraceLineContainsRegisterFile(t *testing.T) {
	c, b := newTestCPU(0x8000)
	b.mem[0x8000] = 0xA9
	b.mem[0x8001] = 0x42
	c.SetPC(0x8000)

	line := c.Trace(241, 1, 7)
	for _, want := range []string{"8000", "A9 42", "LDA #$42", "A:00", "X:00", "Y:00", "PPU:241,  1", "CYC:7"} {
		if !strings.Contains(line, want) {
			t.Errorf("Trace() = %q, missing %q", line, want)
		}
	}
}
