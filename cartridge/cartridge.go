// Package cartridge combines a parsed ROM image with its mapper and
// the cartridge's PRG-RAM (save RAM), presenting the whole package as
// a single unit the console bus can wire in at 0x6000-0xFFFF.
package cartridge

import (
	"github.com/arborian/nescore/mappers"
	"github.com/arborian/nescore/nesrom"
)

// PRG_RAM_PAGE_SIZE is the size of a single PRG-RAM page exposed at
// 0x6000-0x7FFF when a cartridge has save RAM.
const PRG_RAM_PAGE_SIZE = 0x2000

const SRAM_BASE = 0x6000

type Cartridge struct {
	rom    *nesrom.ROM
	mapper mappers.Mapper
	prgRAM []uint8
}

// Load reads a ROM file from path and wires up the mapper it declares.
func Load(path string) (*Cartridge, error) {
	rom, err := nesrom.New(path)
	if err != nil {
		return nil, err
	}

	m, err := mappers.Get(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{rom: rom, mapper: m}
	if m.HasSaveRAM() {
		c.prgRAM = make([]uint8, PRG_RAM_PAGE_SIZE)
	}

	return c, nil
}

func (c *Cartridge) MirroringMode() uint8 {
	return c.mapper.MirroringMode()
}

func (c *Cartridge) HasSaveRAM() bool {
	return c.mapper.HasSaveRAM()
}

func (c *Cartridge) Name() string {
	return c.mapper.Name()
}

// PrgRead handles the 0x6000-0xFFFF range: PRG-RAM below 0x8000 (if
// present), PRG-ROM via the mapper above it.
func (c *Cartridge) PrgRead(addr uint16) uint8 {
	if addr < 0x8000 {
		if c.prgRAM == nil {
			return 0
		}
		return c.prgRAM[addr-SRAM_BASE]
	}
	return c.mapper.PrgRead(addr)
}

func (c *Cartridge) PrgWrite(addr uint16, val uint8) {
	if addr < 0x8000 {
		if c.prgRAM != nil {
			c.prgRAM[addr-SRAM_BASE] = val
		}
		return
	}
	c.mapper.PrgWrite(addr, val)
}

func (c *Cartridge) ChrRead(addr uint16) uint8 {
	return c.mapper.ChrRead(addr)
}

func (c *Cartridge) ChrWrite(addr uint16, val uint8) {
	c.mapper.ChrWrite(addr, val)
}
