package tac

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/Yuk1no000/slr1-project/runtime"
)

// ErrStepLimit is returned by the interpreter if a program executes more
// instructions than allowed, e.g. because of a non-terminating loop.
var ErrStepLimit = errors.New("step limit exceeded")

// DefaultMaxSteps is the default step limit of an interpreter.
const DefaultMaxSteps = 100000

// Interpreter executes quadruples. Variables are kept in the global memory frame
// of its runtime environment and survive between runs; temporaries live in a
// memory frame of their own for the duration of a single run.
type Interpreter struct {
	Runtime  *runtime.Runtime
	MaxSteps int // maximum number of instructions per run
	steps    int
}

// NewInterpreter creates an interpreter with a fresh runtime environment.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		Runtime:  runtime.NewRuntimeEnvironment(),
		MaxSteps: DefaultMaxSteps,
	}
}

// Steps returns the number of instructions executed by the last run.
func (ip *Interpreter) Steps() int {
	return ip.steps
}

// Var returns the value of a variable.
func (ip *Interpreter) Var(name string) (runtime.Value, bool) {
	tag := ip.Runtime.Globals().ResolveTag(name)
	if tag == nil {
		return runtime.Value{}, false
	}
	return tag.Value(), true
}

// Run executes code.
func (ip *Interpreter) Run(code Code) (err error) {
	labels := make(map[string]int)
	for i, q := range code {
		if q.Op == "label" {
			labels[q.Result] = i
		}
	}
	frames := ip.Runtime.MemFrameStack
	frames.PushNewMemoryFrame("temporaries")
	defer frames.PopMemoryFrame()
	ip.steps = 0
	for pc := 0; pc < len(code); pc++ {
		if ip.MaxSteps > 0 && ip.steps >= ip.MaxSteps {
			tracer().Errorf("interpreter stopped after %d steps", ip.steps)
			return fmt.Errorf("instruction %d: %w", pc+1, ErrStepLimit)
		}
		ip.steps++
		q := code[pc]
		tracer().Debugf("%4d: %s", pc+1, q)
		switch {
		case q.Op == "label":
		case q.Op == "jump":
			if pc, err = ip.target(labels, q.Result); err != nil {
				return err
			}
		case q.Op == "jfalse":
			cond, err := ip.operand(q.Arg1)
			if err != nil {
				return fmt.Errorf("instruction %d: %w", pc+1, err)
			}
			if !cond.Truthy() {
				if pc, err = ip.target(labels, q.Result); err != nil {
					return err
				}
			}
		case q.Op == "=":
			v, err := ip.operand(q.Arg1)
			if err != nil {
				return fmt.Errorf("instruction %d: %w", pc+1, err)
			}
			tag, _ := ip.Runtime.Globals().ResolveOrDefineTag(q.Result)
			tag.Set(v)
		case relationalOps[q.Op] || arithmeticOps[q.Op]:
			v, err := ip.binary(q)
			if err != nil {
				return fmt.Errorf("instruction %d: %w", pc+1, err)
			}
			tag, _ := frames.Current().SymbolTable.ResolveOrDefineTag(q.Result)
			tag.Set(v)
		default:
			return fmt.Errorf("instruction %d: unknown operator %q", pc+1, q.Op)
		}
	}
	tracer().Infof("program finished after %d steps", ip.steps)
	return nil
}

// target returns the index of a label.
func (ip *Interpreter) target(labels map[string]int, label string) (int, error) {
	pc, ok := labels[label]
	if !ok {
		return 0, fmt.Errorf("undefined label %s", label)
	}
	return pc, nil
}

// operand evaluates a literal number or looks up a variable or temporary.
func (ip *Interpreter) operand(arg string) (runtime.Value, error) {
	if isNumber(arg) {
		return runtime.ParseValue(arg)
	}
	tag := ip.Runtime.Lookup(arg)
	if tag == nil {
		return runtime.Value{}, fmt.Errorf("undefined variable %s", arg)
	}
	return tag.Value(), nil
}

func isNumber(arg string) bool {
	if arg == "" {
		return false
	}
	r := rune(arg[0])
	if (r == '+' || r == '-') && len(arg) > 1 {
		r = rune(arg[1])
	}
	return unicode.IsDigit(r)
}

func (ip *Interpreter) binary(q Quad) (runtime.Value, error) {
	x, err := ip.operand(q.Arg1)
	if err != nil {
		return x, err
	}
	y, err := ip.operand(q.Arg2)
	if err != nil {
		return y, err
	}
	switch q.Op {
	case ">":
		return runtime.Bool(x.N > y.N), nil
	case "<":
		return runtime.Bool(x.N < y.N), nil
	case "==":
		return runtime.Bool(x.N == y.N), nil
	case ">=":
		return runtime.Bool(x.N >= y.N), nil
	case "<=":
		return runtime.Bool(x.N <= y.N), nil
	case "!=":
		return runtime.Bool(x.N != y.N), nil
	}
	integral := x.Typ == runtime.IntegerType && y.Typ == runtime.IntegerType
	var r float64
	switch q.Op {
	case "+":
		r = x.N + y.N
	case "-":
		r = x.N - y.N
	case "*":
		r = x.N * y.N
	case "/":
		if y.N == 0 {
			return runtime.Value{}, errors.New("division by zero")
		}
		if integral {
			return runtime.Int(int64(x.N) / int64(y.N)), nil
		}
		r = x.N / y.N
	}
	if integral {
		return runtime.Int(int64(r)), nil
	}
	return runtime.Float(r), nil
}
