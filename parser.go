// parser.go — recursive-descent parser for Lox.
//
// Consumes the token stream from lexer.go and builds the AST defined in
// ast.go directly; there is no separate concrete parse tree. Precedence,
// lowest to highest:
//
//	assignment  =           (right-assoc; also obj.attr = value)
//	logic_or    or
//	logic_and   and
//	equality    == !=
//	comparison  < <= > >=
//	term        + -
//	factor      * /
//	unary       ! -
//	call        callee(args) obj.name   (left-folded suffixes)
//	primary     literals, identifiers, this, super.name, ( expr )
//
// Grouping parentheses are unwrapped here; the evaluator never sees them.
package lox

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParseSource scans and parses a complete Lox program.
func ParseSource(src string) (*Program, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseError is a syntax error at a 1-based line and 0-based column.
// AtEOF marks errors caused by running out of input; REPLs use it to decide
// whether to prompt for a continuation line instead of reporting.
type ParseError struct {
	Line  int
	Col   int
	Msg   string
	AtEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse error that more input could
// still fix.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.AtEOF
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks []Token
	i    int
}

// ----- token basics & helpers -----

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) check(t TokenType) bool { return p.peek().Type == t }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	g := p.peek()
	return Token{}, &ParseError{Line: g.Line, Col: g.Col, Msg: msg, AtEOF: g.Type == EOF}
}

func (p *parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, AtEOF: tok.Type == EOF}
}

// ----- declarations & statements -----

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	if len(p.toks) > 0 {
		prog.pos = at(p.toks[0])
	}
	for !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, st)
	}
	return prog, nil
}

func (p *parser) declaration() (Stmt, error) {
	switch {
	case p.match(VAR):
		return p.varDecl()
	case p.match(FUN):
		fn, err := p.function("function")
		return fn, err
	case p.match(CLASS):
		return p.classDecl()
	default:
		return p.statement()
	}
}

func (p *parser) varDecl() (Stmt, error) {
	kw := p.prev()
	name, err := p.need(ID, "expected variable name after 'var'")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarDef{pos: at(kw), Name: name.Lexeme, Init: init}, nil
}

// function parses the name, parameter list and body shared by named
// functions and methods; kind only flavors error messages.
func (p *parser) function(kind string) (*Function, error) {
	name, err := p.need(ID, fmt.Sprintf("expected %s name", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, fmt.Sprintf("expected '(' after %s name", kind)); err != nil {
		return nil, err
	}
	var params []string
	if !p.check(RPAREN) {
		for {
			param, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, fmt.Sprintf("expected '{' before %s body", kind)); err != nil {
		return nil, err
	}
	body, err := p.blockStmts()
	if err != nil {
		return nil, err
	}
	return &Function{pos: at(name), Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *parser) classDecl() (Stmt, error) {
	kw := p.prev()
	name, err := p.need(ID, "expected class name after 'class'")
	if err != nil {
		return nil, err
	}
	var super *Var
	if p.match(LESS) {
		sup, err := p.need(ID, "expected superclass name after '<'")
		if err != nil {
			return nil, err
		}
		super = &Var{pos: at(sup), Name: sup.Lexeme}
	}
	if _, err := p.need(LBRACE, "expected '{' before class body"); err != nil {
		return nil, err
	}
	var methods []*Function
	for !p.check(RBRACE) && !p.atEnd() {
		m, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.need(RBRACE, "expected '}' after class body"); err != nil {
		return nil, err
	}
	return &ClassDecl{pos: at(kw), Name: name.Lexeme, Superclass: super, Methods: methods}, nil
}

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(FOR):
		return p.forStmt()
	case p.match(LBRACE):
		open := p.prev()
		stmts, err := p.blockStmts()
		if err != nil {
			return nil, err
		}
		return &Block{pos: at(open), Stmts: stmts}, nil
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() (Stmt, error) {
	kw := p.prev()
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after print value"); err != nil {
		return nil, err
	}
	return &Print{pos: at(kw), Expr: e}, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	kw := p.prev()
	var val Expr
	if !p.check(SEMICOLON) {
		var err error
		val, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &Return{pos: at(kw), Value: val}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	kw := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &If{pos: at(kw), Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	kw := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &While{pos: at(kw), Cond: cond, Body: body}, nil
}

func (p *parser) forStmt() (Stmt, error) {
	kw := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		// no initializer
	case p.match(VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RPAREN) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &For{pos: at(kw), Init: init, Cond: cond, Incr: incr, Body: body}, nil
}

// blockStmts parses declarations up to the closing '}' (already past '{').
func (p *parser) blockStmts() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RBRACE) && !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if _, err := p.need(RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	first := p.peek()
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{pos: at(first), Expr: e}, nil
}

// ----- expressions -----

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative; the left side is parsed as an ordinary
// expression and then reinterpreted as an assignment target.
func (p *parser) assignment() (Expr, error) {
	left, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if !p.match(ASSIGN) {
		return left, nil
	}
	eq := p.prev()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := left.(type) {
	case *Var:
		return &AssignVar{pos: target.pos, Name: target.Name, Value: value}, nil
	case *Getattr:
		return &Setattr{pos: target.pos, Obj: target.Obj, Name: target.Name, Value: value}, nil
	default:
		return nil, p.errAt(eq, "invalid assignment target")
	}
}

func (p *parser) logicOr() (Expr, error) {
	left, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{pos: at(op), Left: left, Right: right, Op: OR}
	}
	return left, nil
}

func (p *parser) logicAnd() (Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &Logical{pos: at(op), Left: left, Right: right, Op: AND}
	}
	return left, nil
}

func (p *parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, EQ, NEQ)
}

func (p *parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, LESS, LESS_EQ, GREATER, GREATER_EQ)
}

func (p *parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, PLUS, MINUS)
}

func (p *parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, STAR, SLASH)
}

// binaryLevel folds a left-associative run of ops at one precedence level.
func (p *parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinOp{pos: at(op), Left: left, Right: right, Op: op.Type}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{pos: at(op), Operand: operand, Op: op.Type}, nil
	}
	return p.call()
}

// call left-folds "(args)" and ".name" suffixes onto a primary.
func (p *parser) call() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LPAREN):
			open := p.prev()
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			e = &Call{pos: at(open), Callee: e, Args: args}
		case p.match(DOT):
			name, err := p.need(ID, "expected attribute name after '.'")
			if err != nil {
				return nil, err
			}
			e = &Getattr{pos: at(name), Obj: e, Name: name.Lexeme}
		default:
			return e, nil
		}
	}
}

func (p *parser) arguments() ([]Expr, error) {
	var args []Expr
	if !p.check(RPAREN) {
		for {
			a, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch {
	case p.match(NUMBER):
		return &Literal{pos: at(tok), Value: NumVal(tok.Literal.(float64))}, nil
	case p.match(STRING):
		return &Literal{pos: at(tok), Value: StrVal(tok.Literal.(string))}, nil
	case p.match(TRUE):
		return &Literal{pos: at(tok), Value: BoolVal(true)}, nil
	case p.match(FALSE):
		return &Literal{pos: at(tok), Value: BoolVal(false)}, nil
	case p.match(NIL):
		return &Literal{pos: at(tok), Value: NilVal()}, nil
	case p.match(THIS):
		return &This{pos: at(tok)}, nil
	case p.match(SUPER):
		if _, err := p.need(DOT, "expected '.' after 'super'"); err != nil {
			return nil, err
		}
		name, err := p.need(ID, "expected superclass method name")
		if err != nil {
			return nil, err
		}
		return &Super{pos: at(tok), Method: name.Lexeme}, nil
	case p.match(ID):
		return &Var{pos: at(tok), Name: tok.Lexeme}, nil
	case p.match(LPAREN):
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errAt(tok, fmt.Sprintf("unexpected token %q", tok.Lexeme))
	}
}
