package mappers

import "github.com/arborian/nescore/nesrom"

// Mapper3 implements CNROM: fixed PRG-ROM (same layout as NROM) with
// a single 8KB-bank-switched CHR-ROM, selected by a 2-bit register
// latched from any write in the PRG address space.
type Mapper3 struct {
	*baseMapper
	oneBank    bool
	bankSelect uint16
}

func init() {
	RegisterMapper(3, &Mapper3{baseMapper: newBaseMapper(3, "CNROM")})
}

func (m *Mapper3) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	m.oneBank = r.NumPrgBlocks() == 1
}

func (m *Mapper3) PrgRead(addr uint16) uint8 {
	a := addr - 0x8000
	if m.oneBank {
		a &= 0x3FFF
	}
	return m.rom.PrgRead(a)
}

func (m *Mapper3) PrgWrite(addr uint16, val uint8) {
	m.bankSelect = uint16(val & 0x03)
}

func (m *Mapper3) ChrRead(addr uint16) uint8 {
	return m.rom.ChrRead(addr | (m.bankSelect << 13))
}

func (m *Mapper3) ChrWrite(addr uint16, val uint8) {
	// CHR is ROM on a CNROM cartridge; writes are ignored.
}
