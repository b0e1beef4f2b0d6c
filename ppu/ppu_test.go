package ppu

import "testing"

type fakeBus struct {
	chr      [0x2000]uint8
	nmiCount int
}

func (b *fakeBus) ChrRead(addr uint16) uint8       { return b.chr[addr] }
func (b *fakeBus) ChrWrite(addr uint16, val uint8) { b.chr[addr] = val }
func (b *fakeBus) TriggerNMI()                     { b.nmiCount++ }

// ticksToVblank is the number of Tick(1)-equivalent calls from the
// power-on state (scanline -1, cycle 0, not yet processed) through the
// cycle that raises vblank (scanline 241, cycle 1). 242 scanlines
// (-1..240) of 341 cycles each are fully processed first, landing on
// (241, 0); two further ticks process (241, 0) and then (241, 1).
const ticksToVblank = 242*341 + 2

func TestPPURaisesNMIAtVblank(t *testing.T) {
	b := &fakeBus{}
	p := New(b)
	p.WriteReg(PPUCTRL, CTRL_GENERATE_NMI)

	p.Tick(ticksToVblank)

	if b.nmiCount != 1 {
		t.Fatalf("nmiCount = %d, want 1", b.nmiCount)
	}
	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Error("STATUS_VERTICAL_BLANK not set entering vblank")
	}
}

func TestPPUNoNMIWhenDisabled(t *testing.T) {
	b := &fakeBus{}
	p := New(b)
	// CTRL_GENERATE_NMI left unset.

	p.Tick(ticksToVblank)

	if b.nmiCount != 0 {
		t.Errorf("nmiCount = %d, want 0 (NMI generation disabled)", b.nmiCount)
	}
	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Error("STATUS_VERTICAL_BLANK not set entering vblank, regardless of NMI enable")
	}
}

func TestPPUStatusReadClearsVblankAndLatch(t *testing.T) {
	b := &fakeBus{}
	p := New(b)
	p.Tick(ticksToVblank)

	p.addrLatch = true
	got := p.ReadReg(PPUSTATUS)
	if got&STATUS_VERTICAL_BLANK == 0 {
		t.Fatal("PPUSTATUS read didn't report vblank was set")
	}
	if p.status&STATUS_VERTICAL_BLANK != 0 {
		t.Error("reading PPUSTATUS did not clear STATUS_VERTICAL_BLANK")
	}
	if p.addrLatch {
		t.Error("reading PPUSTATUS did not reset the address latch")
	}
}

func TestPPUVerticalMirroring(t *testing.T) {
	b := &fakeBus{}
	p := New(b)
	p.SetMirrorMode(MIRROR_VERTICAL)

	// Vertical mirroring: nametables A (0x0000) and C (0x0800) mirror
	// each other vertically and share a physical table; B (0x0400)
	// is a distinct, unmirrored table.
	nt1, off1 := p.nameTableSlot(0x0000)
	nt2, off2 := p.nameTableSlot(0x0800)
	if nt1 != nt2 || off1 != off2 {
		t.Errorf("vertical mirroring: 0x0000 -> (%d,%d), 0x0800 -> (%d,%d); want same slot", nt1, off1, nt2, off2)
	}

	nt3, _ := p.nameTableSlot(0x0400)
	if nt3 == nt1 {
		t.Errorf("vertical mirroring: 0x0400 landed in the same physical table as 0x0000")
	}
}

func TestPPUHorizontalMirroring(t *testing.T) {
	b := &fakeBus{}
	p := New(b)
	p.SetMirrorMode(MIRROR_HORIZONTAL)

	// Horizontal mirroring: nametables A (0x0000) and B (0x0400)
	// mirror each other horizontally and share a physical table; C
	// (0x0800) is a distinct, unmirrored table.
	nt1, _ := p.nameTableSlot(0x0000)
	nt2, _ := p.nameTableSlot(0x0400)
	if nt1 != nt2 {
		t.Errorf("horizontal mirroring: 0x0000 and 0x0400 should share a physical table, got %d and %d", nt1, nt2)
	}

	nt3, _ := p.nameTableSlot(0x0800)
	if nt3 == nt1 {
		t.Errorf("horizontal mirroring: 0x0800 landed in the same physical table as 0x0000")
	}
}

// TestPPUGreyscaleMasksPaletteReads confirms that with PPUMASK bit 0
// (greyscale) set, palette reads come back AND-ed with 0x30, limiting
// the result to one of the four grey entries each palette column
// shares.
func TestPPUGreyscaleMasksPaletteReads(t *testing.T) {
	b := &fakeBus{}
	p := New(b)

	writeToPalette := func(addr uint16, val uint8) {
		p.WriteReg(PPUADDR, uint8(addr>>8))
		p.WriteReg(PPUADDR, uint8(addr&0xFF))
		p.WriteReg(PPUDATA, val)
	}
	readFromPalette := func(addr uint16) uint8 {
		p.WriteReg(PPUADDR, uint8(addr>>8))
		p.WriteReg(PPUADDR, uint8(addr&0xFF))
		// Unlike other VRAM ranges, palette reads aren't delayed by
		// one PPUDATA read behind the internal buffer.
		return p.ReadReg(PPUDATA)
	}

	writeToPalette(0x3F01, 0x16)

	if got := readFromPalette(0x3F01); got != 0x16 {
		t.Fatalf("palette read without greyscale = 0x%02x, want 0x16", got)
	}

	p.WriteReg(PPUMASK, MASK_GREYSCALE)
	if got := readFromPalette(0x3F01); got != 0x16&0x30 {
		t.Errorf("palette read with greyscale set = 0x%02x, want 0x%02x", got, 0x16&0x30)
	}
}

func TestPPUOAMDataReadWrite(t *testing.T) {
	b := &fakeBus{}
	p := New(b)

	p.WriteReg(OAMADDR, 0x10)
	p.WriteReg(OAMDATA, 0xAB)
	p.WriteReg(OAMADDR, 0x10)
	if got := p.ReadReg(OAMDATA); got != 0xAB {
		t.Errorf("OAMDATA read-back = 0x%02x, want 0xab", got)
	}
}

func TestPPUWriteOAMBypassesOAMADDR(t *testing.T) {
	b := &fakeBus{}
	p := New(b)

	p.WriteOAM(0x20, 0x99)
	p.WriteReg(OAMADDR, 0x20)
	if got := p.ReadReg(OAMDATA); got != 0x99 {
		t.Errorf("OAMDATA after WriteOAM = 0x%02x, want 0x99", got)
	}
}
