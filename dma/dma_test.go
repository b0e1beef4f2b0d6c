package dma

import "testing"

type fakeMem struct {
	mem [0x10000]uint8
}

func (m *fakeMem) Read(addr uint16) uint8 { return m.mem[addr] }

type fakeOAM struct {
	oam [256]uint8
}

func (o *fakeOAM) WriteOAM(addr uint8, data uint8) { o.oam[addr] = data }

func TestDMATransfersAllBytes(t *testing.T) {
	mem := &fakeMem{}
	for i := 0; i < 256; i++ {
		mem.mem[0x0200+i] = uint8(i)
	}
	oam := &fakeOAM{}

	d := New()
	d.Start(0x02)

	// An even starting clock value needs one extra alignment cycle
	// before the read/write alternation begins; run well past the
	// worst case (514 cycles) to be safe.
	var clock uint64
	for i := 0; i < 520 && d.Transferring(); i++ {
		d.Clock(clock, mem, oam)
		clock++
	}

	if d.Transferring() {
		t.Fatalf("DMA still transferring after 520 cycles")
	}

	for i := 0; i < 256; i++ {
		if oam.oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = 0x%02x, want 0x%02x", i, oam.oam[i], uint8(i))
		}
	}
}

func TestDMANotTransferringInitially(t *testing.T) {
	d := New()
	if d.Transferring() {
		t.Error("new Device reports Transferring() before Start()")
	}
}

func TestDMAReset(t *testing.T) {
	d := New()
	d.Start(0x04)
	if !d.Transferring() {
		t.Fatal("Start() did not begin a transfer")
	}

	d.Reset()
	if d.Transferring() {
		t.Error("Reset() did not clear an in-flight transfer")
	}
}
