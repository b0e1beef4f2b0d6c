package mos6502

import "fmt"

// Disassemble formats the instruction at the current PC as a mnemonic
// plus operand, in the style nestest.log uses (e.g. "JMP $C5F5",
// "LDA #$00", "STA $07,X"). It reads memory but does not execute or
// advance anything.
func (c *CPU) Disassemble() string {
	op, err := c.getInst()
	if err != nil {
		return "???"
	}

	operand := c.disassembleOperand(op)
	if operand == "" {
		return op.name
	}
	return op.name + " " + operand
}

func (c *CPU) disassembleOperand(op opcode) string {
	switch op.mode {
	case IMPLICIT:
		return ""
	case ACCUMULATOR:
		return "A"
	case IMMEDIATE:
		return fmt.Sprintf("#$%02X", c.memRead(c.pc+1))
	case ZERO_PAGE:
		return fmt.Sprintf("$%02X", c.memRead(c.pc+1))
	case ZERO_PAGE_X:
		return fmt.Sprintf("$%02X,X", c.memRead(c.pc+1))
	case ZERO_PAGE_Y, ZERO_PAGE_X_BUT_Y:
		return fmt.Sprintf("$%02X,Y", c.memRead(c.pc+1))
	case ABSOLUTE:
		return fmt.Sprintf("$%04X", c.memRead16(c.pc+1))
	case ABSOLUTE_X:
		return fmt.Sprintf("$%04X,X", c.memRead16(c.pc+1))
	case ABSOLUTE_Y:
		return fmt.Sprintf("$%04X,Y", c.memRead16(c.pc+1))
	case INDIRECT:
		return fmt.Sprintf("($%04X)", c.memRead16(c.pc+1))
	case INDIRECT_X:
		return fmt.Sprintf("($%02X,X)", c.memRead(c.pc+1))
	case INDIRECT_Y:
		return fmt.Sprintf("($%02X),Y", c.memRead(c.pc+1))
	case RELATIVE:
		target := (c.pc + 2) + uint16(int8(c.memRead(c.pc+1)))
		return fmt.Sprintf("$%04X", target)
	default:
		return ""
	}
}

// Trace formats one nestest-style trace line for the instruction about
// to execute: PC, raw opcode bytes, disassembly, and register file.
// scanline/cycle and the running CPU cycle count are supplied by the
// caller, since the CPU has no reference to the PPU or the console's
// master clock.
func (c *CPU) Trace(scanline, ppuCycle int16, cycleCount uint64) string {
	op, err := c.getInst()
	if err != nil {
		op = opcodes[0x00]
	}

	var raw string
	for i := 0; i < int(op.bytes); i++ {
		raw += fmt.Sprintf("%02X ", c.memRead(c.pc+uint16(i)))
	}

	return fmt.Sprintf("%04X  %-9s%-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		c.pc, raw, c.Disassemble(), c.acc, c.x, c.y, c.status, c.sp, scanline, ppuCycle, cycleCount)
}
