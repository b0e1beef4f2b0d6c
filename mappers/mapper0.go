package mappers

import "github.com/arborian/nescore/nesrom"

// Mapper0 implements NROM: no bank switching. PRG-ROM is either one
// 16KB bank mirrored twice, or two 16KB banks mapped straight
// through. CHR is a single fixed 8KB bank, usually CHR-ROM.
type Mapper0 struct {
	*baseMapper
	oneBank bool
}

func init() {
	RegisterMapper(0, &Mapper0{baseMapper: newBaseMapper(0, "NROM")})
}

func (m *Mapper0) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	m.oneBank = r.NumPrgBlocks() == 1
}

func (m *Mapper0) PrgRead(addr uint16) uint8 {
	a := addr - 0x8000
	if m.oneBank {
		a &= 0x3FFF
	}
	return m.rom.PrgRead(a)
}

func (m *Mapper0) PrgWrite(addr uint16, val uint8) {
	// NROM has no writable PRG-ROM.
}

func (m *Mapper0) ChrRead(addr uint16) uint8 {
	return m.rom.ChrRead(addr)
}

func (m *Mapper0) ChrWrite(addr uint16, val uint8) {
	m.rom.ChrWrite(addr, val)
}
