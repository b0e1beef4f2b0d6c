package console

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/arborian/nescore/cartridge"
	"github.com/arborian/nescore/dma"
	"github.com/arborian/nescore/mos6502"
	"github.com/arborian/nescore/ppu"
	"github.com/arborian/nescore/tracelog"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	NES_BASE_MEMORY = 0x800 // 2KB built in RAM

	MAX_ADDRESS          = math.MaxUint16
	MEM_SIZE             = MAX_ADDRESS + 1
	MAX_NES_BASE_RAM     = 0x1FFF
	MAX_PPU_REG_MIRRORED = 0x3FFF
	MIN_CART             = 0x6000 // first address the cartridge (SRAM or PRG-ROM) answers
)

const (
	OAMDMA = 0x4014 // Triggers DMA from CPU memory to PPU OAM
	JOY1   = 0x4016
	JOY2   = 0x4017
)

type Bus struct {
	cpu         *mos6502.CPU
	ppu         *ppu.PPU
	cart        *cartridge.Cartridge
	dma         *dma.Device
	controllers [2]controller
	ram         []uint8
	ticks       uint64
	trace       *tracelog.Buffer // nil unless AttachTraceLog was called
}

// AttachTraceLog wires a diagnostic-ROM status/message capture buffer
// into 0x6000-0x6FFF, for harnesses driving a test ROM (nestest,
// blargg) that reports results that way. Without it, that range falls
// through to normal cartridge SRAM/PRG-ROM handling.
func (b *Bus) AttachTraceLog() *tracelog.Buffer {
	b.trace = tracelog.New()
	return b.trace
}

func New(cart *cartridge.Cartridge) *Bus {
	bus := &Bus{cart: cart, dma: dma.New(), ram: make([]uint8, NES_BASE_MEMORY)}

	bus.cpu = mos6502.New(bus)
	bus.ppu = ppu.New(bus)
	bus.ppu.SetMirrorMode(cart.MirroringMode())

	w, h := bus.ppu.GetResolution()
	ebiten.SetWindowSize(w*2, h*2) // Start with 2x the screen size
	ebiten.SetWindowTitle("NES Core")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return bus
}

func (b *Bus) MirrorMode() uint8 {
	return b.cart.MirroringMode()
}

// Layout returns the constant resolution of the NES and is part of
// the ebiten.Game interface. By returning constants here, we will
// force ebiten to scale the display when the window size changes.
func (b *Bus) Layout(w, h int) (int, int) {
	return b.ppu.GetResolution()
}

// Draw updates the displayed ebiten window with the current state of
// the PPU. GetPixels returns one RGBA color per pixel, row-major,
// matching GetResolution.
func (b *Bus) Draw(screen *ebiten.Image) {
	px := b.ppu.GetPixels()
	w, h := b.ppu.GetResolution()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			screen.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
		}
	}
}

// Update is called by ebiten roughly every 1/60s and polls the host
// keyboard into both controller ports. The CPU/PPU/DMA simulation
// itself runs on its own goroutine via Run, driven by the NES's own
// clock rather than ebiten's frame pacing.
func (b *Bus) Update() error {
	b.controllers[0].poll()
	b.controllers[1].poll()
	return nil
}

// Trace formats one nestest-style trace line for the instruction the
// CPU is about to execute, combining the CPU's own disassembly and
// register dump with the PPU's current raster position.
func (b *Bus) Trace() string {
	scanline, cycle := b.ppu.ScanlineCycle()
	return b.cpu.Trace(scanline, cycle, b.cpu.TotalCycles())
}

// TriggerNMI is used by the PPU to signal the CPU that it is in vblank.
func (b *Bus) TriggerNMI() {
	b.cpu.TriggerNMI()
}

// ChrRead is used by the PPU to access CHR-ROM/CHR-RAM in the loaded cartridge.
func (b *Bus) ChrRead(addr uint16) uint8 {
	return b.cart.ChrRead(addr)
}

// ChrWrite is used by the PPU to write through to CHR-RAM, when the
// loaded cartridge's mapper has any.
func (b *Bus) ChrWrite(addr uint16, val uint8) {
	b.cart.ChrWrite(addr, val)
}

func (b *Bus) Read(addr uint16) uint8 {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		return b.ram[addr&0x7FF]
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		return b.ppu.ReadReg(addr & 0x2007)
	case addr == JOY1:
		return b.controllers[0].read()
	case addr == JOY2:
		return b.controllers[1].read()
	case addr < MIN_CART:
		// Remaining APU/IO registers and the unmapped expansion
		// area below cartridge space; not modeled.
		return 0
	case b.trace != nil && addr < tracelog.Base+tracelog.Size:
		return b.trace.Read(addr)
	case addr <= MAX_ADDRESS:
		return b.cart.PrgRead(addr)
	}

	panic("should never happen")
}

func (b *Bus) ClearMem() {
	b.ram = make([]uint8, len(b.ram))
}

func (b *Bus) Write(addr uint16, val uint8) {
	// https://www.nesdev.org/wiki/CPU_memory_map
	switch {
	case addr <= MAX_NES_BASE_RAM:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		b.ram[addr&0x07FF] = val
	case addr <= MAX_PPU_REG_MIRRORED:
		// PPU registers are mirrored between 0x2000 and 0x4000
		b.ppu.WriteReg(addr&0x2007, val)
	case addr == OAMDMA:
		b.dma.Start(val)
	case addr == JOY1:
		// Both controller shift registers latch off a single
		// write to 0x4016; 0x4017 is read-only on real hardware.
		b.controllers[0].write(val)
		b.controllers[1].write(val)
	case addr < MIN_CART:
		// Remaining APU/IO registers and the unmapped expansion
		// area below cartridge space; not modeled.
	case b.trace != nil && addr < tracelog.Base+tracelog.Size:
		b.trace.Write(addr, val)
	case addr <= MAX_ADDRESS:
		b.cart.PrgWrite(addr, val)
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// Run drives the whole console from the NES master clock: the PPU
// ticks every cycle, and every third cycle is handed to either the
// CPU or, while an OAM DMA transfer is in flight, the DMA device
// instead. This is what actually stalls the CPU during a DMA: it
// simply never gets ticked until the transfer releases the bus.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick(1)
			if b.ticks%3 == 0 {
				if b.dma.Transferring() {
					b.dma.Clock(b.ticks, b, b.ppu)
				} else {
					b.cpu.Tick()
				}
			}
			b.ticks += 1
		}
	}
}

func (b *Bus) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - cleear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)step - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)memory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)instruction - show instruction memory locations")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show PPU status")
		fmt.Println("(Q)uit - shutdown the console")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.Run(cctx)
		case 's', 'S':
			c := b.cpu.Step() * 3
			for i := 0; i < c; i++ {
				b.ppu.Tick(1)
			}
		case 't', 'T':
			fmt.Println()
			i := 0
			for {
				m := b.cpu.StackAddr() + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
				if m == 0x01ff || i == 2 {
					break
				}
				i += 1
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Printf("\n%s\n\n", b.cpu.Inst())
		case 'u', 'U':
			fmt.Println(b.ppu)
		case 'e', 'E':
			b.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
				i += 1
			}
			fmt.Printf("\n\n")
		}
	}
}
