package syntax

import (
	"os"
)

// Write lowers an optimized tree into instructions.
func Write(tree *RegexTree) (*Code, error) {
	w := writer{
		sethash: make(map[string]int),
	}

	code, err := w.codeFromTree(tree)

	if tree.Debug && code != nil {
		os.Stdout.WriteString(code.Dump())
		os.Stdout.WriteString("\n")
	}

	return code, err
}

type writer struct {
	insts     []Inst
	sethash   map[string]int
	settable  []*CharSet
	registers int
}

// The top level code generator. It walks the tree depth first, emitting
// each subtree's code in place and patching forward jumps once their
// targets are known.
func (w *writer) codeFromTree(tree *RegexTree) (code *Code, err error) {
	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(*InvariantViolation)
			if !ok {
				panic(r)
			}
			err = iv
		}
	}()

	if tree.Root.T != NtRoot {
		return nil, invariantViolation("Write", tree.Root)
	}
	if tree.Root.Left != nil {
		w.emitNode(tree.Root.Left)
	}
	w.emit(Inst{Op: OpMatch})

	return &Code{
		Insts:             w.insts,
		Sets:              w.settable,
		Registers:         w.registers,
		FindOptimizations: newFindOptimizations(tree),
	}, nil
}

func (w *writer) emitNode(n *RegexNode) {
	switch n.T {
	case NtOne:
		w.emit(Inst{Op: OpOne, Ch: n.Ch})

	case NtSet:
		w.emit(Inst{Op: OpSet, Set: w.setCode(n.Set)})

	case NtDot:
		w.emit(Inst{Op: OpAny})

	case NtConcatenate:
		w.emitNode(n.Left)
		w.emitNode(n.Right)

	case NtAlternate:
		split := w.emit(Inst{Op: OpSplit})
		w.patchJump(split, w.curPos())
		w.emitNode(n.Left)
		jmp := w.emit(Inst{Op: OpJmp})
		w.patchAlt(split, w.curPos())
		w.emitNode(n.Right)
		w.patchJump(jmp, w.curPos())

	case NtQuestion, NtQuestionLazy:
		split := w.emit(Inst{Op: OpSplit})
		body := w.curPos()
		w.emitNode(n.Left)
		w.patchSplit(split, body, w.curPos(), !n.IsLazy())

	case NtStar, NtStarLazy:
		split := w.emit(Inst{Op: OpSplit})
		body := w.emitLoop(n.Left, !n.IsLazy())
		w.patchSplit(split, body, w.curPos(), !n.IsLazy())

	case NtPlus, NtPlusLazy:
		w.emitLoop(n.Left, !n.IsLazy())

	default:
		panic(invariantViolation("Write", n))
	}
}

// emitLoop emits a marked loop body and returns where it starts.
func (w *writer) emitLoop(body *RegexNode, greedy bool) int {
	reg := w.registers
	w.registers++

	start := w.emit(Inst{Op: OpMark, Reg: reg})
	w.emitNode(body)
	loop := w.emit(Inst{Op: OpLoop, Reg: reg, Out: start, Greedy: greedy})
	w.patchAlt(loop, w.curPos())
	return start
}

// patchSplit orders a split's targets: greedy tries the body first.
func (w *writer) patchSplit(offset, body, exit int, greedy bool) {
	if greedy {
		w.insts[offset].Out, w.insts[offset].Out1 = body, exit
	} else {
		w.insts[offset].Out, w.insts[offset].Out1 = exit, body
	}
}

// Returns the current position in the emitted code.
func (w *writer) curPos() int {
	return len(w.insts)
}

// Fixes up the primary target of the instruction at offset.
func (w *writer) patchJump(offset, jumpDest int) {
	w.insts[offset].Out = jumpDest
}

// Fixes up the alternative target of the instruction at offset.
func (w *writer) patchAlt(offset, jumpDest int) {
	w.insts[offset].Out1 = jumpDest
}

// Returns an index in the set table for a charset
// uses a map to eliminate duplicates.
func (w *writer) setCode(set *CharSet) int {
	hash := set.String()
	i, ok := w.sethash[hash]
	if !ok {
		i = len(w.settable)
		w.sethash[hash] = i
		w.settable = append(w.settable, set)
	}
	return i
}

func (w *writer) emit(inst Inst) int {
	w.insts = append(w.insts, inst)
	return len(w.insts) - 1
}
