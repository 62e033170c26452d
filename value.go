// value.go — the runtime value model: a closed tagged union plus the
// callable/class/instance objects that live behind it.
package lox

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil      ValueTag = iota // nil (no payload)
	VTBool                     // bool
	VTNum                      // float64
	VTStr                      // string
	VTFun                      // *Fun (user function or bound method)
	VTNative                   // *Native (host-provided function)
	VTClass                    // *Class
	VTInstance                 // *Instance
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag). Values are immutable except instances, whose field
// map mutates in place.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Constructors.

func NilVal() Value           { return Value{Tag: VTNil} }
func BoolVal(b bool) Value    { return Value{Tag: VTBool, Data: b} }
func NumVal(f float64) Value  { return Value{Tag: VTNum, Data: f} }
func StrVal(s string) Value   { return Value{Tag: VTStr, Data: s} }
func FunVal(f *Fun) Value     { return Value{Tag: VTFun, Data: f} }
func classVal(c *Class) Value { return Value{Tag: VTClass, Data: c} }

// truthy implements Lox truthiness: nil and false are falsy, everything else
// (including 0 and "") is truthy.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// valuesEqual compares by value for primitives and by identity for functions,
// classes and instances. Different tags are never equal.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return a.Data == b.Data
	}
}

// Callable is the uniform invocation contract over user functions, bound
// methods, natives and classes. Arity is checked by the evaluator before
// Call runs.
type Callable interface {
	Arity() int
	Call(ip *Interpreter, args []Value) Value
}

// asCallable extracts the callable behind a value, if any.
func asCallable(v Value) (Callable, bool) {
	switch v.Tag {
	case VTFun:
		return v.Data.(*Fun), true
	case VTNative:
		return v.Data.(*Native), true
	case VTClass:
		return v.Data.(*Class), true
	default:
		return nil, false
	}
}

// Fun is a user-defined function: its declaration plus the environment it
// captured. Binding a method produces a new Fun whose closure holds "this";
// the declaration is shared.
type Fun struct {
	Decl    *Function
	Closure *Env
	IsInit  bool
}

func (f *Fun) Arity() int { return len(f.Decl.Params) }

// Call runs the body in a fresh child of the *closure* environment — never
// the caller's — with parameters bound positionally.
func (f *Fun) Call(ip *Interpreter, args []Value) Value {
	frame := NewEnv(f.Closure)
	for i, name := range f.Decl.Params {
		frame.Define(name, args[i])
	}
	sig := ip.execBlockStmts(f.Decl.Body, frame)
	if sig.kind == sigReturn {
		return sig.value
	}
	return NilVal()
}

// bind returns a copy of f whose closure has the receiver as "this".
func (f *Fun) bind(inst *Instance) *Fun {
	scope := NewEnv(f.Closure)
	scope.Define("this", Value{Tag: VTInstance, Data: inst})
	return &Fun{Decl: f.Decl, Closure: scope, IsInit: f.IsInit}
}

// Native is a host-provided builtin.
type Native struct {
	Name  string
	NArgs int
	Impl  func(ip *Interpreter, args []Value) Value
}

func (n *Native) Arity() int { return n.NArgs }

func (n *Native) Call(ip *Interpreter, args []Value) Value { return n.Impl(ip, args) }

// Class carries a name, an optional superclass and the method table. Classes
// never reference subclasses, so the superclass chain cannot cycle.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Fun
}

// findMethod searches the class and then its superclass chain; first match
// wins.
func (c *Class) findMethod(name string) (*Fun, bool) {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Arity of a class is the arity of its init method, or zero.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call creates a new instance and runs init (if any) bound to it. The init
// return value is discarded; the instance is always the result.
func (c *Class) Call(ip *Interpreter, args []Value) Value {
	inst := &Instance{Class: c, Fields: map[string]Value{}}
	if init, ok := c.findMethod("init"); ok {
		init.bind(inst).Call(ip, args)
	}
	return Value{Tag: VTInstance, Data: inst}
}

// Instance is a class reference plus a mutable field map.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// getAttr returns the field if present, else a method bound to the instance.
// Fields shadow methods of the same name.
func (i *Instance) getAttr(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.findMethod(name); ok {
		return FunVal(m.bind(i)), true
	}
	return Value{}, false
}

// setAttr writes a field, creating it if absent.
func (i *Instance) setAttr(name string, v Value) {
	i.Fields[name] = v
}
