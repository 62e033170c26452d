// interpreter_ops.go — expression evaluation and operator semantics.
//
// Evaluation order is fixed: binary operands left then right (both always),
// call callee then arguments left-to-right, attribute assignment value
// before object. Logical and/or are the only operators that skip a
// sub-expression.
package lox

// typeName renders a value's kind for fault messages.
func typeName(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return "bool"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	case VTFun, VTNative:
		return "function"
	case VTClass:
		return "class"
	case VTInstance:
		return "instance"
	default:
		return "value"
	}
}

// ----- expression nodes -----

func (e *Literal) eval(ip *Interpreter, env *Env) Value {
	return e.Value
}

func (e *Var) eval(ip *Interpreter, env *Env) Value {
	v, ok := env.Get(e.Name)
	if !ok {
		fail(e, UndefinedName, "undefined variable %q", e.Name)
	}
	return v
}

func (e *AssignVar) eval(ip *Interpreter, env *Env) Value {
	v := e.Value.eval(ip, env)
	if !env.Assign(e.Name, v) {
		fail(e, UndefinedName, "cannot assign to undefined variable %q", e.Name)
	}
	return v
}

func (e *BinOp) eval(ip *Interpreter, env *Env) Value {
	left := e.Left.eval(ip, env)
	right := e.Right.eval(ip, env)
	switch e.Op {
	case PLUS:
		switch {
		case left.Tag == VTNum && right.Tag == VTNum:
			return NumVal(left.Data.(float64) + right.Data.(float64))
		case left.Tag == VTStr && right.Tag == VTStr:
			return StrVal(left.Data.(string) + right.Data.(string))
		default:
			fail(e, TypeMismatch, "operands of '+' must both be numbers or both be strings, got %s and %s",
				typeName(left), typeName(right))
		}
	case MINUS:
		a, b := e.numOperands(left, right, "-")
		return NumVal(a - b)
	case STAR:
		a, b := e.numOperands(left, right, "*")
		return NumVal(a * b)
	case SLASH:
		// IEEE-754 semantics: dividing by zero yields ±Inf or NaN.
		a, b := e.numOperands(left, right, "/")
		return NumVal(a / b)
	case EQ:
		return BoolVal(valuesEqual(left, right))
	case NEQ:
		return BoolVal(!valuesEqual(left, right))
	case LESS:
		return BoolVal(e.compare(left, right, "<") < 0)
	case LESS_EQ:
		return BoolVal(e.compare(left, right, "<=") <= 0)
	case GREATER:
		return BoolVal(e.compare(left, right, ">") > 0)
	case GREATER_EQ:
		return BoolVal(e.compare(left, right, ">=") >= 0)
	}
	fail(e, TypeMismatch, "unsupported binary operator")
	return Value{}
}

// numOperands requires two numbers or faults TypeMismatch.
func (e *BinOp) numOperands(left, right Value, op string) (float64, float64) {
	if left.Tag != VTNum || right.Tag != VTNum {
		fail(e, TypeMismatch, "operands of %q must be numbers, got %s and %s",
			op, typeName(left), typeName(right))
	}
	return left.Data.(float64), right.Data.(float64)
}

// compare orders two numbers or two strings; anything else is a fault.
func (e *BinOp) compare(left, right Value, op string) int {
	switch {
	case left.Tag == VTNum && right.Tag == VTNum:
		a, b := left.Data.(float64), right.Data.(float64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case left.Tag == VTStr && right.Tag == VTStr:
		a, b := left.Data.(string), right.Data.(string)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	default:
		fail(e, TypeMismatch, "cannot compare %s and %s with %q",
			typeName(left), typeName(right), op)
		return 0
	}
}

func (e *Logical) eval(ip *Interpreter, env *Env) Value {
	left := e.Left.eval(ip, env)
	if e.Op == AND {
		if !truthy(left) {
			return left
		}
	} else {
		if truthy(left) {
			return left
		}
	}
	return e.Right.eval(ip, env)
}

func (e *UnaryOp) eval(ip *Interpreter, env *Env) Value {
	v := e.Operand.eval(ip, env)
	switch e.Op {
	case MINUS:
		if v.Tag != VTNum {
			fail(e, TypeMismatch, "operand of unary '-' must be a number, got %s", typeName(v))
		}
		return NumVal(-v.Data.(float64))
	case BANG:
		return BoolVal(!truthy(v))
	}
	fail(e, TypeMismatch, "unsupported unary operator")
	return Value{}
}

func (e *Call) eval(ip *Interpreter, env *Env) Value {
	callee := e.Callee.eval(ip, env)
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, a.eval(ip, env))
	}
	return ip.callValue(e, callee, args)
}

func (e *Getattr) eval(ip *Interpreter, env *Env) Value {
	obj := e.Obj.eval(ip, env)
	if obj.Tag != VTInstance {
		fail(e, NotAnObject, "only instances have attributes, got %s", typeName(obj))
	}
	inst := obj.Data.(*Instance)
	v, ok := inst.getAttr(e.Name)
	if !ok {
		fail(e, NoSuchAttribute, "%q has no attribute %q", inst.Class.Name, e.Name)
	}
	return v
}

func (e *Setattr) eval(ip *Interpreter, env *Env) Value {
	v := e.Value.eval(ip, env)
	obj := e.Obj.eval(ip, env)
	if obj.Tag != VTInstance {
		fail(e, NotAnObject, "only instances have attributes, got %s", typeName(obj))
	}
	obj.Data.(*Instance).setAttr(e.Name, v)
	return v
}

func (e *This) eval(ip *Interpreter, env *Env) Value {
	v, ok := env.Get("this")
	if !ok {
		fail(e, UndefinedName, "'this' used outside of a method")
	}
	return v
}

func (e *Super) eval(ip *Interpreter, env *Env) Value {
	sv, ok := env.Get("super")
	if !ok {
		fail(e, NoSuperclass, "'super' used outside of a class with a superclass")
	}
	super := sv.Data.(*Class)
	recv, ok := env.Get("this")
	if !ok {
		fail(e, UndefinedName, "'super' used outside of a method")
	}
	m, ok := super.findMethod(e.Method)
	if !ok {
		fail(e, NoSuchAttribute, "%q has no method %q", super.Name, e.Method)
	}
	return FunVal(m.bind(recv.Data.(*Instance)))
}
