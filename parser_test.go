package lox

import (
	"strings"
	"testing"
)

func parseOK(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource error: %v\nsource:\n%s", err, src)
	}
	return prog
}

func parseFail(t *testing.T, src, msgPart string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("want parse error, got none\nsource:\n%s", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if msgPart != "" && !strings.Contains(pe.Msg, msgPart) {
		t.Fatalf("want message containing %q, got %q", msgPart, pe.Msg)
	}
	return pe
}

func TestParsePrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3 == 7;")
	e := prog.Stmts[0].(*ExprStmt).Expr.(*BinOp)
	if e.Op != EQ {
		t.Fatalf("top operator should be ==, got %v", e.Op)
	}
	add := e.Left.(*BinOp)
	if add.Op != PLUS {
		t.Fatalf("left of == should be +, got %v", add.Op)
	}
	mul := add.Right.(*BinOp)
	if mul.Op != STAR {
		t.Fatalf("right of + should be *, got %v", mul.Op)
	}
}

func TestParseGroupingUnwrapped(t *testing.T) {
	prog := parseOK(t, "(1 + 2) * 3;")
	e := prog.Stmts[0].(*ExprStmt).Expr.(*BinOp)
	if e.Op != STAR {
		t.Fatalf("top operator should be *, got %v", e.Op)
	}
	if _, ok := e.Left.(*BinOp); !ok {
		t.Fatalf("grouped expression should be the bare BinOp, got %T", e.Left)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	prog := parseOK(t, "x = 1; a.b = 2; a.b.c = 3;")
	if _, ok := prog.Stmts[0].(*ExprStmt).Expr.(*AssignVar); !ok {
		t.Fatalf("x = 1 should be AssignVar")
	}
	set := prog.Stmts[1].(*ExprStmt).Expr.(*Setattr)
	if set.Name != "b" {
		t.Fatalf("want attr b, got %q", set.Name)
	}
	nested := prog.Stmts[2].(*ExprStmt).Expr.(*Setattr)
	if nested.Name != "c" {
		t.Fatalf("want attr c, got %q", nested.Name)
	}
	if inner, ok := nested.Obj.(*Getattr); !ok || inner.Name != "b" {
		t.Fatalf("object of a.b.c should be Getattr b, got %#v", nested.Obj)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	parseFail(t, "1 = 2;", "invalid assignment target")
	parseFail(t, "f() = 2;", "invalid assignment target")
}

func TestParseCallSuffixFolding(t *testing.T) {
	prog := parseOK(t, "a.b(1)(2).c;")
	get := prog.Stmts[0].(*ExprStmt).Expr.(*Getattr)
	if get.Name != "c" {
		t.Fatalf("outermost should be .c, got %q", get.Name)
	}
	outer := get.Obj.(*Call)
	if len(outer.Args) != 1 {
		t.Fatalf("outer call should have 1 arg")
	}
	inner := outer.Callee.(*Call)
	if _, ok := inner.Callee.(*Getattr); !ok {
		t.Fatalf("inner callee should be a.b, got %T", inner.Callee)
	}
}

func TestParseClass(t *testing.T) {
	prog := parseOK(t, `
class B < A {
  init(x) { this.x = x; }
  m() { return super.m(); }
}
`)
	cd := prog.Stmts[0].(*ClassDecl)
	if cd.Name != "B" || cd.Superclass == nil || cd.Superclass.Name != "A" {
		t.Fatalf("bad class header: %#v", cd)
	}
	if len(cd.Methods) != 2 || cd.Methods[0].Name != "init" || cd.Methods[1].Name != "m" {
		t.Fatalf("bad method table: %#v", cd.Methods)
	}
	ret := cd.Methods[1].Body[0].(*Return)
	call := ret.Value.(*Call)
	if sup, ok := call.Callee.(*Super); !ok || sup.Method != "m" {
		t.Fatalf("super call mis-parsed: %#v", call.Callee)
	}
}

func TestParseFor(t *testing.T) {
	prog := parseOK(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	f := prog.Stmts[0].(*For)
	if _, ok := f.Init.(*VarDef); !ok {
		t.Fatalf("init should be VarDef, got %T", f.Init)
	}
	if f.Cond == nil || f.Incr == nil {
		t.Fatalf("cond/incr missing")
	}
	prog = parseOK(t, "for (;;) print 1;")
	f = prog.Stmts[0].(*For)
	if f.Init != nil || f.Cond != nil || f.Incr != nil {
		t.Fatalf("all clauses should be empty: %#v", f)
	}
}

func TestParseErrorsCarryPosition(t *testing.T) {
	pe := parseFail(t, "var x = ;", "")
	if pe.Line != 1 || pe.Col != 8 {
		t.Fatalf("want 1:8, got %d:%d", pe.Line, pe.Col)
	}
}

func TestParseIncompleteAtEOF(t *testing.T) {
	_, err := ParseSource("fun f() {")
	if !IsIncomplete(err) {
		t.Fatalf("dangling block should be incomplete, got %v", err)
	}
	_, err = ParseSource("var x = 1 +")
	if !IsIncomplete(err) {
		t.Fatalf("dangling operator should be incomplete, got %v", err)
	}
	_, err = ParseSource("var x = ;")
	if IsIncomplete(err) {
		t.Fatalf("hard syntax error must not read as incomplete")
	}
}

func TestParseSemicolonRequired(t *testing.T) {
	parseFail(t, "print 1", "';'")
}
