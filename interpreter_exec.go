// interpreter_exec.go — statement execution and the call machinery.
//
// Every statement's exec returns a signal. sigNone means fall through;
// sigReturn carries a `return` value upward until a function call boundary
// (Fun.Call in value.go) absorbs it. Faults are not signals: they panic with
// *RuntimeError and unwind the whole run (recovered in interpreter.go).
package lox

type sigKind int

const (
	sigNone sigKind = iota
	sigReturn
)

// signal is the control-flow result of executing one statement.
type signal struct {
	kind  sigKind
	value Value
}

var normal = signal{kind: sigNone}

// execBlockStmts runs stmts in env, stopping at the first return signal.
func (ip *Interpreter) execBlockStmts(stmts []Stmt, env *Env) signal {
	for _, st := range stmts {
		if sig := st.exec(ip, env); sig.kind != sigNone {
			return sig
		}
	}
	return normal
}

// callValue dispatches a call through the Callable abstraction, checking
// callability and arity at the call site.
func (ip *Interpreter) callValue(site *Call, callee Value, args []Value) Value {
	fn, ok := asCallable(callee)
	if !ok {
		fail(site, NotCallable, "can only call functions and classes, got %s", typeName(callee))
	}
	if len(args) != fn.Arity() {
		fail(site, ArityMismatch, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(ip, args)
}

// ----- statement nodes -----

func (s *ExprStmt) exec(ip *Interpreter, env *Env) signal {
	s.Expr.eval(ip, env)
	return normal
}

func (s *Print) exec(ip *Interpreter, env *Env) signal {
	v := s.Expr.eval(ip, env)
	writeLine(ip.Stdout, Stringify(v))
	return normal
}

func (s *VarDef) exec(ip *Interpreter, env *Env) signal {
	v := NilVal()
	if s.Init != nil {
		v = s.Init.eval(ip, env)
	}
	env.Define(s.Name, v)
	return normal
}

func (s *If) exec(ip *Interpreter, env *Env) signal {
	if truthy(s.Cond.eval(ip, env)) {
		return s.Then.exec(ip, env)
	}
	if s.Else != nil {
		return s.Else.exec(ip, env)
	}
	return normal
}

func (s *While) exec(ip *Interpreter, env *Env) signal {
	for truthy(s.Cond.eval(ip, env)) {
		if sig := s.Body.exec(ip, env); sig.kind != sigNone {
			return sig
		}
	}
	return normal
}

func (s *For) exec(ip *Interpreter, env *Env) signal {
	// The loop gets one scope of its own: the initializer variable lives
	// there and is shared across iterations (closures made in the body all
	// see the same binding). The body runs in a fresh child scope each
	// round so its own declarations do not leak between iterations.
	loop := NewEnv(env)
	if s.Init != nil {
		if sig := s.Init.exec(ip, loop); sig.kind != sigNone {
			return sig
		}
	}
	for s.Cond == nil || truthy(s.Cond.eval(ip, loop)) {
		if sig := s.Body.exec(ip, NewEnv(loop)); sig.kind != sigNone {
			return sig
		}
		if s.Incr != nil {
			s.Incr.eval(ip, loop)
		}
	}
	return normal
}

func (s *Block) exec(ip *Interpreter, env *Env) signal {
	return ip.execBlockStmts(s.Stmts, NewEnv(env))
}

func (s *Function) exec(ip *Interpreter, env *Env) signal {
	env.Define(s.Name, FunVal(&Fun{Decl: s, Closure: env}))
	return normal
}

func (s *ClassDecl) exec(ip *Interpreter, env *Env) signal {
	var super *Class
	methodEnv := env
	if s.Superclass != nil {
		sv := s.Superclass.eval(ip, env)
		if sv.Tag != VTClass {
			fail(s.Superclass, TypeMismatch, "superclass of %q must be a class, got %s", s.Name, typeName(sv))
		}
		super = sv.Data.(*Class)
		// Methods close over a scope carrying the superclass so that
		// `super` resolves relative to the class that textually owns the
		// method, not the instance's dynamic class.
		methodEnv = NewEnv(env)
		methodEnv.Define("super", sv)
	}
	methods := make(map[string]*Fun, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name] = &Fun{Decl: m, Closure: methodEnv, IsInit: m.Name == "init"}
	}
	env.Define(s.Name, classVal(&Class{Name: s.Name, Superclass: super, Methods: methods}))
	return normal
}

func (s *Return) exec(ip *Interpreter, env *Env) signal {
	v := NilVal()
	if s.Value != nil {
		v = s.Value.eval(ip, env)
	}
	return signal{kind: sigReturn, value: v}
}
