package cartridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arborian/nescore/nesrom"
)

// writeTestROM assembles a minimal valid iNES image and returns its
// path. flags6 carries mirroring/battery bits.
func writeTestROM(t *testing.T, prgBanks uint8, flags6 uint8) string {
	t.Helper()

	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, 1, flags6, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := append([]byte{}, header...)
	buf = append(buf, make([]byte, int(prgBanks)*nesrom.PRG_BLOCK_SIZE)...)
	buf = append(buf, make([]byte, nesrom.CHR_BLOCK_SIZE)...)

	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("couldn't write test ROM: %v", err)
	}
	return path
}

func TestLoadNROM(t *testing.T) {
	cart, err := Load(writeTestROM(t, 2, 0x00))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cart.Name() != "NROM" {
		t.Errorf("Name() = %q, want NROM", cart.Name())
	}
	if cart.HasSaveRAM() {
		t.Error("HasSaveRAM() = true, want false (battery bit unset)")
	}
}

func TestLoadWithSaveRAM(t *testing.T) {
	cart, err := Load(writeTestROM(t, 1, nesrom.BATTERY_BACKED_SRAM))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cart.HasSaveRAM() {
		t.Fatal("HasSaveRAM() = false, want true (battery bit set)")
	}

	cart.PrgWrite(0x6000, 0x7E)
	if got := cart.PrgRead(0x6000); got != 0x7E {
		t.Errorf("PrgRead(0x6000) = 0x%02x, want 0x7e", got)
	}
}

func TestLoadUnknownMapper(t *testing.T) {
	// Mapper 0xFE isn't registered.
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0xE0, 0xF0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := append([]byte{}, header...)
	buf = append(buf, make([]byte, nesrom.PRG_BLOCK_SIZE)...)
	buf = append(buf, make([]byte, nesrom.CHR_BLOCK_SIZE)...)
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("couldn't write test ROM: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with an unregistered mapper id: got nil error, want non-nil")
	}
}
