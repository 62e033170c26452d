// ast.go — AST node set for Lox.
//
// Nodes are immutable trees built once by the parser; the evaluator never
// mutates them. Expressions implement eval(ip, env) -> Value, statements
// implement exec(ip, env) -> signal (see interpreter_exec.go for the signal
// type). Each node keeps the line/col of its anchor token so runtime faults
// can point back into the source.
package lox

// Expr is any node that evaluates to a Value.
type Expr interface {
	eval(ip *Interpreter, env *Env) Value
	Pos() (line, col int)
}

// Stmt is any node executed for effect or control flow.
type Stmt interface {
	exec(ip *Interpreter, env *Env) signal
	Pos() (line, col int)
}

// pos is the shared anchor-position mixin for all nodes.
type pos struct {
	Line int
	Col  int
}

func (p pos) Pos() (int, int) { return p.Line, p.Col }

func at(tok Token) pos { return pos{Line: tok.Line, Col: tok.Col} }

// ----- expressions -----

// Literal holds an embedded constant: nil, bool, float64 or string.
type Literal struct {
	pos
	Value Value
}

// Var is a variable read, resolved against the scope chain at eval time.
type Var struct {
	pos
	Name string
}

// AssignVar writes to the nearest enclosing scope that already defines Name.
type AssignVar struct {
	pos
	Name  string
	Value Expr
}

// BinOp is an infix operation; both operands are always evaluated, left first.
type BinOp struct {
	pos
	Left  Expr
	Right Expr
	Op    TokenType
}

// Logical is "and"/"or" with short-circuit evaluation. It returns operand
// values, not coerced booleans.
type Logical struct {
	pos
	Left  Expr
	Right Expr
	Op    TokenType // AND or OR
}

// UnaryOp is prefix "-" or "!".
type UnaryOp struct {
	pos
	Operand Expr
	Op      TokenType
}

// Call invokes a callable with positional arguments.
type Call struct {
	pos
	Callee Expr
	Args   []Expr
}

// Getattr reads a field or bound method from an instance.
type Getattr struct {
	pos
	Obj  Expr
	Name string
}

// Setattr writes a field on an instance. The value expression is evaluated
// before the object expression.
type Setattr struct {
	pos
	Obj   Expr
	Name  string
	Value Expr
}

// This resolves the receiver binding of the enclosing method.
type This struct {
	pos
}

// Super resolves a method on the superclass of the class that textually owns
// the currently executing method, bound to the current receiver.
type Super struct {
	pos
	Method string
}

// ----- statements -----

// Program is the root node: a list of top-level statements.
type Program struct {
	pos
	Stmts []Stmt
}

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	pos
	Expr Expr
}

// Print evaluates an expression and writes its rendering plus a newline.
type Print struct {
	pos
	Expr Expr
}

// VarDef binds a name in the current scope; the initializer defaults to nil.
type VarDef struct {
	pos
	Name string
	Init Expr // may be nil
}

// If executes Then when the condition is truthy, Else (if present) otherwise.
type If struct {
	pos
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

// While re-evaluates the condition before each iteration.
type While struct {
	pos
	Cond Expr
	Body Stmt
}

// For is the C-style loop. It is executed, not desugared, but follows the
// classic while-equivalence: the initializer runs once in the loop's own
// scope, the condition and increment re-evaluate there each round, and the
// body gets a fresh child scope per iteration.
type For struct {
	pos
	Init Stmt // may be nil; VarDef or ExprStmt
	Cond Expr // may be nil (infinite loop)
	Incr Expr // may be nil
	Body Stmt
}

// Block executes its statements in a fresh child scope.
type Block struct {
	pos
	Stmts []Stmt
}

// Function declares a named function capturing the current environment.
type Function struct {
	pos
	Name   string
	Params []string
	Body   []Stmt
}

// ClassDecl declares a class with an optional superclass and a method table.
type ClassDecl struct {
	pos
	Name       string
	Superclass *Var // may be nil
	Methods    []*Function
}

// Return unwinds to the nearest enclosing call with an optional value.
type Return struct {
	pos
	Value Expr // may be nil
}
