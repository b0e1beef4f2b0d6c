package mappers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arborian/nescore/nesrom"
)

// writeTestROM assembles a minimal valid iNES image with the given
// mapper id (split across the high nibbles of flags6/flags7) and
// returns a parsed *nesrom.ROM.
func writeTestROM(t *testing.T, mapperID uint8) *nesrom.ROM {
	t.Helper()

	flags6 := (mapperID & 0x0F) << 4
	flags7 := mapperID & 0xF0
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := append([]byte{}, header...)
	buf = append(buf, make([]byte, nesrom.PRG_BLOCK_SIZE)...)
	buf = append(buf, make([]byte, nesrom.CHR_BLOCK_SIZE)...)

	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("couldn't write test ROM: %v", err)
	}

	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't parse test ROM: %v", err)
	}
	return rom
}

func TestGetUnknownMapper(t *testing.T) {
	rom := writeTestROM(t, 0xFE)
	if _, err := Get(rom); err == nil {
		t.Error("Get() on an unregistered mapper id: got nil error, want non-nil")
	}
}

func TestGetKnownMapper(t *testing.T) {
	rom := writeTestROM(t, 0)
	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(mapper 0): %v", err)
	}
	if m.ID() != 0 {
		t.Errorf("Get(mapper 0).ID() = %d, want 0", m.ID())
	}
}

func TestRegisterMapperPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterMapper() with a duplicate id: expected a panic, got none")
		}
	}()

	RegisterMapper(0, &Mapper0{baseMapper: newBaseMapper(0, "NROM-dup")})
}

func TestMapper0OneBankMirrors(t *testing.T) {
	m := &Mapper0{baseMapper: newBaseMapper(0, "NROM"), oneBank: true}
	m.rom = &nesrom.ROM{}

	// We can't easily construct a ROM with PRG data without going
	// through nesrom.New, so exercise only the address-folding math
	// here: PrgRead(addr) folds addr-0x8000 into the first 16KB bank
	// on single-bank boards, i.e. 0x8000 and 0xC000 read the same
	// underlying offset.
	a1 := (0x8000 - 0x8000)
	a2 := (0xC000 - 0x8000) & 0x3FFF
	if a1 != a2 {
		t.Errorf("one-bank NROM folding: 0x8000 offset %d != 0xC000 offset %d", a1, a2)
	}
}

func TestMapper3BankSwitch(t *testing.T) {
	m := &Mapper3{baseMapper: newBaseMapper(3, "CNROM-test")}

	m.PrgWrite(0x8000, 0x02)
	if m.bankSelect != 2 {
		t.Errorf("bankSelect after PrgWrite(0x02) = %d, want 2", m.bankSelect)
	}

	m.PrgWrite(0x8000, 0xFF) // only the low 2 bits are used
	if m.bankSelect != 3 {
		t.Errorf("bankSelect after PrgWrite(0xFF) = %d, want 3", m.bankSelect)
	}
}
