package lazyre

import (
	"errors"
	"fmt"

	"github.com/lazyre/lazyre/helpers"
	"github.com/lazyre/lazyre/runecacher"
	"github.com/lazyre/lazyre/syntax"
)

var (
	// ErrMatchTimeout is wrapped by the error a run returns when it
	// exceeds the Regexp's MatchTimeout.
	ErrMatchTimeout = errors.New("match timeout")

	errStartAt = errors.New("start offset must not be negative or past the end of the input")
)

// how many instructions run between deadline checks
const timeoutChecksToSkip = 1000

type runner struct {
	re   *Regexp
	code *syntax.Code

	text   *runecacher.RuneCacher
	prefix []rune

	// backtracking stack; regstack holds a copy of the registers for
	// every frame
	stack    []frame
	regstack []int
	regs     []int

	ignoreTimeout       bool
	timeout             fasttime
	timeoutChecksToSkip int
}

type frame struct {
	pc, pos int
	regs    int // offset into regstack
}

// run scans for the first match at or after textstart; a negative
// textstart means the beginning of the input.
func (re *Regexp) run(quick bool, textstart int, input *runecacher.RuneCacher) (*Match, error) {
	if textstart < 0 {
		textstart = 0
	}
	if textstart > input.Len() {
		return nil, errStartAt
	}

	r := re.getRunner()
	defer re.putRunner(r)

	r.init(input)
	start, end, pc, err := r.scan(textstart)
	if err != nil {
		return nil, err
	}
	if start < 0 {
		return nil, nil
	}

	var text []rune
	if !quick {
		text = input.Runes()
	}
	return &Match{
		Index:  start,
		Length: end - start,
		Thread: Thread{
			PC:    pc,
			Label: re.Label,
			Start: uint64(start),
			End:   uint64(end),
		},
		text:    text,
		textpos: end,
	}, nil
}

func (re *Regexp) getRunner() *runner {
	re.mu.Lock()
	defer re.mu.Unlock()
	if n := len(re.runner); n > 0 {
		r := re.runner[n-1]
		re.runner = re.runner[:n-1]
		return r
	}
	return &runner{
		re:     re,
		code:   re.code,
		prefix: []rune(re.code.FindOptimizations.LeadingPrefix),
		regs:   make([]int, re.code.Registers),
	}
}

func (re *Regexp) putRunner(r *runner) {
	r.text = nil
	re.mu.Lock()
	re.runner = append(re.runner, r)
	re.mu.Unlock()
}

func (r *runner) init(text *runecacher.RuneCacher) {
	r.text = text
	r.ignoreTimeout = r.re.MatchTimeout == DefaultMatchTimeout
	if !r.ignoreTimeout {
		r.timeout = makeDeadline(r.re.MatchTimeout)
		r.timeoutChecksToSkip = timeoutChecksToSkip
	}
}

// scan tries each start offset in turn and returns the first one whose
// first derivation is not empty, with the end offset and the pc of the
// final instruction. start is -1 when there is no such offset.
func (r *runner) scan(textstart int) (start, end, pc int, err error) {
	fo := r.code.FindOptimizations
	textlen := r.text.Len()

	for start = textstart; start+fo.MinRequiredLength <= textlen; start++ {
		if len(r.prefix) > 0 {
			i := helpers.IndexOf(r.text.RunesFrom(start), r.prefix)
			if i < 0 {
				break
			}
			start += i
		}

		end, pc, err = r.execute(start)
		if err != nil {
			return -1, -1, -1, err
		}
		if end > start {
			return start, end, pc, nil
		}
	}
	return -1, -1, -1, nil
}

// execute runs the program from start and returns where its first
// successful derivation ends, or -1 if there is none.
func (r *runner) execute(start int) (end, pc int, err error) {
	r.stack = r.stack[:0]
	r.regstack = r.regstack[:0]
	insts := r.code.Insts
	pos := start

	for {
		if err := r.checkTimeout(); err != nil {
			return -1, -1, err
		}

		inst := &insts[pc]
		ok := true

		switch inst.Op {
		case syntax.OpOne:
			ch, in := r.text.TryRuneAt(pos)
			ok = in && ch == inst.Ch
			pc, pos = pc+1, pos+1

		case syntax.OpSet:
			ch, in := r.text.TryRuneAt(pos)
			ok = in && r.code.Sets[inst.Set].CharIn(ch)
			pc, pos = pc+1, pos+1

		case syntax.OpAny:
			ch, in := r.text.TryRuneAt(pos)
			ok = in && ch != '\n'
			pc, pos = pc+1, pos+1

		case syntax.OpSplit:
			r.push(inst.Out1, pos)
			pc = inst.Out

		case syntax.OpJmp:
			pc = inst.Out

		case syntax.OpMark:
			r.regs[inst.Reg] = pos
			pc++

		case syntax.OpLoop:
			switch {
			case pos == r.regs[inst.Reg]:
				// an empty iteration ends the loop
				pc = inst.Out1
			case inst.Greedy:
				r.push(inst.Out1, pos)
				pc = inst.Out
			default:
				r.push(inst.Out, pos)
				pc = inst.Out1
			}

		case syntax.OpMatch:
			return pos, pc, nil

		default:
			return -1, -1, fmt.Errorf("lazyre: unknown opcode %v at %d", inst.Op, pc)
		}

		if !ok {
			if len(r.stack) == 0 {
				return -1, -1, nil
			}
			pc, pos = r.pop()
		}
	}
}

func (r *runner) push(pc, pos int) {
	r.stack = append(r.stack, frame{pc: pc, pos: pos, regs: len(r.regstack)})
	r.regstack = append(r.regstack, r.regs...)
}

func (r *runner) pop() (pc, pos int) {
	f := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	copy(r.regs, r.regstack[f.regs:])
	r.regstack = r.regstack[:f.regs]
	return f.pc, f.pos
}

func (r *runner) checkTimeout() error {
	if r.ignoreTimeout {
		return nil
	}
	r.timeoutChecksToSkip--
	if r.timeoutChecksToSkip != 0 {
		return nil
	}
	r.timeoutChecksToSkip = timeoutChecksToSkip

	if r.timeout.reached() {
		return fmt.Errorf("%w after %v on input `%v`", ErrMatchTimeout, r.re.MatchTimeout, r.text.String())
	}
	return nil
}
