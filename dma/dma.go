// Package dma implements the OAM DMA unit at $4014. A write there
// stalls the CPU for 513 or 514 cycles while 256 bytes are copied
// from CPU memory into PPU OAM, alternating read and write cycles.
package dma

// CPUReader is the subset of the console bus the DMA device needs to
// pull CPU-visible bytes from during a transfer.
type CPUReader interface {
	Read(addr uint16) uint8
}

// OAMWriter is implemented by the PPU to accept directly-addressed
// OAM writes, bypassing OAMADDR.
type OAMWriter interface {
	WriteOAM(addr uint8, data uint8)
}

type Device struct {
	page     uint8
	addr     uint8
	data     uint8
	flag     bool
	transfer bool
}

func New() *Device {
	return &Device{flag: true}
}

func (d *Device) Reset() {
	*d = *New()
}

// Start latches the source page and begins a transfer. Called from a
// CPU write to $4014.
func (d *Device) Start(page uint8) {
	d.page = page
	d.addr = 0x00
	d.transfer = true
}

func (d *Device) Transferring() bool {
	return d.transfer
}

// Clock advances the DMA state machine by one CPU cycle. clock is the
// running master-clock counter (the same one the bus increments every
// PPU tick); its parity drives the alignment wait and the
// read/write alternation.
func (d *Device) Clock(clock uint64, mem CPUReader, oam OAMWriter) {
	if d.flag {
		if clock%2 == 1 {
			d.flag = false
		}
		return
	}

	if clock%2 == 0 {
		d.data = mem.Read(uint16(d.page)<<8 | uint16(d.addr))
	} else {
		oam.WriteOAM(d.addr, d.data)
		d.addr += 1
		if d.addr == 0x00 {
			d.transfer = false
			d.flag = true
		}
	}
}
