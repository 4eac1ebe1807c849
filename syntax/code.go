package syntax

import (
	"bytes"
	"fmt"
	"strconv"
)

// InstOp is the opcode of one instruction.
type InstOp int

const (
	OpOne   InstOp = iota // match Ch
	OpSet                 // match Sets[Set]
	OpAny                 // match any rune except \n
	OpSplit               // try Out, on failure Out1
	OpJmp                 // continue at Out
	OpMark                // record the current offset in register Reg
	OpLoop                // end of a loop body; see below
	OpMatch               // success
)

// OpLoop closes one iteration of a * or + body that started at the
// OpMark for the same register. An iteration that consumed nothing
// leaves the loop through Out1. Otherwise a greedy loop tries another
// iteration (Out) before leaving, a lazy loop leaves before trying
// another iteration.

// Inst is one instruction of a compiled pattern.
type Inst struct {
	Op     InstOp
	Ch     rune // OpOne
	Set    int  // OpSet, index into Code.Sets
	Out    int  // OpSplit, OpJmp, OpLoop
	Out1   int  // OpSplit, OpLoop
	Reg    int  // OpMark, OpLoop
	Greedy bool // OpLoop
}

// Code is a pattern lowered for the runner.
type Code struct {
	Insts             []Inst
	Sets              []*CharSet
	Registers         int // number of loop registers
	FindOptimizations *FindOptimizations
}

var opStr = []string{
	"One", "Set", "Any", "Split", "Jmp", "Mark", "Loop", "Match",
}

func (op InstOp) String() string {
	if op >= 0 && int(op) < len(opStr) {
		return opStr[op]
	}
	return "Unknown(" + strconv.Itoa(int(op)) + ")"
}

func (c *Code) OpcodeDescription(offset int) string {
	buf := &bytes.Buffer{}
	inst := c.Insts[offset]

	fmt.Fprintf(buf, "%06d ", offset)
	buf.WriteString(inst.Op.String())

	switch inst.Op {
	case OpOne:
		buf.WriteString(" Ch = " + CharDescription(inst.Ch))
	case OpSet:
		buf.WriteString(" Set = " + c.Sets[inst.Set].String())
	case OpSplit:
		fmt.Fprintf(buf, " Out = %d, Out1 = %d", inst.Out, inst.Out1)
	case OpJmp:
		fmt.Fprintf(buf, " Out = %d", inst.Out)
	case OpMark:
		fmt.Fprintf(buf, " Reg = %d", inst.Reg)
	case OpLoop:
		fmt.Fprintf(buf, " Reg = %d, Out = %d, Out1 = %d", inst.Reg, inst.Out, inst.Out1)
		if !inst.Greedy {
			buf.WriteString(" (lazy)")
		}
	}

	return buf.String()
}

func (c *Code) Dump() string {
	buf := &bytes.Buffer{}

	if f := c.FindOptimizations; f != nil {
		fmt.Fprintf(buf, "MinRequiredLength: %d\n", f.MinRequiredLength)
		if f.LeadingPrefix != "" {
			fmt.Fprintf(buf, "LeadingPrefix: %q\n", f.LeadingPrefix)
		}
	}

	for i := range c.Insts {
		buf.WriteString(c.OpcodeDescription(i))
		buf.WriteString("\n")
	}

	return buf.String()
}
