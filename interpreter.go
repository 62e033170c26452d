// interpreter.go — public API surface for the Lox interpreter.
//
// The Interpreter owns two well-known environment frames:
//   - Core: native builtins (clock, str, len, anything a host registers).
//   - Global: user program state; parent is Core, so builtins are visible
//     but user code cannot rebind them for other runs.
//
// Entry points:
//   - RunSource(name, src): parse and execute a whole program against Global.
//     Errors come back rendered as caret snippets (errors.go).
//   - EvalSource(src): REPL-style; executes in Global and returns the value
//     of a trailing expression statement. Errors are returned unrendered so
//     the caller decides presentation.
//   - RegisterNative(name, arity, impl): install a host builtin into Core.
//
// Faults inside the evaluator propagate as panic(*RuntimeError) and are
// recovered here; `return` unwinding is a threaded signal and never panics
// (see interpreter_exec.go).
package lox

import (
	"fmt"
	"io"
	"os"
)

// FaultKind classifies runtime faults.
type FaultKind int

const (
	UndefinedName FaultKind = iota
	NotCallable
	ArityMismatch
	NotAnObject
	NoSuchAttribute
	TypeMismatch
	NoSuperclass
)

func (k FaultKind) String() string {
	switch k {
	case UndefinedName:
		return "UndefinedName"
	case NotCallable:
		return "NotCallable"
	case ArityMismatch:
		return "ArityMismatch"
	case NotAnObject:
		return "NotAnObject"
	case NoSuchAttribute:
		return "NoSuchAttribute"
	case TypeMismatch:
		return "TypeMismatch"
	case NoSuperclass:
		return "NoSuperclass"
	default:
		return "Fault"
	}
}

// RuntimeError is a fault raised during evaluation. Line is 1-based and Col
// 0-based, pointing at the anchor token of the faulting node.
type RuntimeError struct {
	Kind FaultKind
	Msg  string
	Line int
	Col  int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s: %s", e.Line, e.Col+1, e.Kind, e.Msg)
}

// Interpreter evaluates Lox programs. It is single-threaded; one Interpreter
// must not be driven from multiple goroutines.
type Interpreter struct {
	Core   *Env
	Global *Env
	Stdout io.Writer
}

// NewInterpreter returns an interpreter with standard builtins installed and
// Stdout wired to os.Stdout.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{Stdout: os.Stdout}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	registerStandardBuiltins(ip)
	return ip
}

// RegisterNative installs a host function under name in the Core frame.
// Arity is enforced at call sites exactly like user-function arity.
func (ip *Interpreter) RegisterNative(name string, arity int, impl func(ip *Interpreter, args []Value) Value) {
	ip.Core.Define(name, Value{Tag: VTNative, Data: &Native{Name: name, NArgs: arity, Impl: impl}})
}

// RunSource parses and executes src against Global. The returned error, if
// any, is rendered with a caret snippet naming srcName.
func (ip *Interpreter) RunSource(srcName, src string) error {
	prog, err := ParseSource(src)
	if err != nil {
		return WrapErrorWithName(err, srcName, src)
	}
	if err := ip.RunProgram(prog); err != nil {
		return WrapErrorWithName(err, srcName, src)
	}
	return nil
}

// RunProgram executes an already-parsed program against Global. Statements
// run in order; the first fault aborts the run.
func (ip *Interpreter) RunProgram(prog *Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			err = re
		}
	}()
	for _, st := range prog.Stmts {
		st.exec(ip, ip.Global)
	}
	return nil
}

// EvalSource executes src in Global and returns the value of the final
// statement when it is an expression statement, nil Value otherwise. Used by
// the REPL so `1 + 2;` echoes 3 while declarations echo nothing.
func (ip *Interpreter) EvalSource(src string) (out Value, err error) {
	prog, perr := ParseSource(src)
	if perr != nil {
		return Value{}, perr
	}
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			out, err = Value{}, re
		}
	}()
	out = NilVal()
	for i, st := range prog.Stmts {
		if es, ok := st.(*ExprStmt); ok && i == len(prog.Stmts)-1 {
			out = es.Expr.eval(ip, ip.Global)
			continue
		}
		st.exec(ip, ip.Global)
	}
	return out, nil
}

// ----- fault raising (internal) -----

// fail raises a runtime fault anchored at node n.
func fail(n interface{ Pos() (int, int) }, kind FaultKind, format string, args ...interface{}) {
	line, col := n.Pos()
	panic(&RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line, Col: col})
}
