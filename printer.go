// printer.go — value rendering and an indented AST dump.
package lox

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Stringify renders a value the way `print` shows it. Numbers drop a trailing
// ".0" (1.0 prints as 1), nil prints as "nil", strings print raw.
func Stringify(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTFun:
		return fmt.Sprintf("<fn %s>", v.Data.(*Fun).Decl.Name)
	case VTNative:
		return fmt.Sprintf("<native fn %s>", v.Data.(*Native).Name)
	case VTClass:
		return fmt.Sprintf("<class %s>", v.Data.(*Class).Name)
	case VTInstance:
		return fmt.Sprintf("<instance of %s>", v.Data.(*Instance).Class.Name)
	default:
		return "<value>"
	}
}

func writeLine(w io.Writer, s string) {
	fmt.Fprintln(w, s)
}

// DumpAST renders a program as an indented tree, one node per line. Used by
// the REPL's :ast command and handy in tests.
func DumpAST(prog *Program) string {
	var b strings.Builder
	for _, st := range prog.Stmts {
		dumpStmt(&b, st, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpStmt(b *strings.Builder, st Stmt, depth int) {
	indent(b, depth)
	switch s := st.(type) {
	case *ExprStmt:
		b.WriteString("expr\n")
		dumpExpr(b, s.Expr, depth+1)
	case *Print:
		b.WriteString("print\n")
		dumpExpr(b, s.Expr, depth+1)
	case *VarDef:
		fmt.Fprintf(b, "var %s\n", s.Name)
		if s.Init != nil {
			dumpExpr(b, s.Init, depth+1)
		}
	case *If:
		b.WriteString("if\n")
		dumpExpr(b, s.Cond, depth+1)
		dumpStmt(b, s.Then, depth+1)
		if s.Else != nil {
			dumpStmt(b, s.Else, depth+1)
		}
	case *While:
		b.WriteString("while\n")
		dumpExpr(b, s.Cond, depth+1)
		dumpStmt(b, s.Body, depth+1)
	case *For:
		b.WriteString("for\n")
		if s.Init != nil {
			dumpStmt(b, s.Init, depth+1)
		}
		if s.Cond != nil {
			dumpExpr(b, s.Cond, depth+1)
		}
		if s.Incr != nil {
			dumpExpr(b, s.Incr, depth+1)
		}
		dumpStmt(b, s.Body, depth+1)
	case *Block:
		b.WriteString("block\n")
		for _, inner := range s.Stmts {
			dumpStmt(b, inner, depth+1)
		}
	case *Function:
		fmt.Fprintf(b, "fun %s(%s)\n", s.Name, strings.Join(s.Params, ", "))
		for _, inner := range s.Body {
			dumpStmt(b, inner, depth+1)
		}
	case *ClassDecl:
		if s.Superclass != nil {
			fmt.Fprintf(b, "class %s < %s\n", s.Name, s.Superclass.Name)
		} else {
			fmt.Fprintf(b, "class %s\n", s.Name)
		}
		for _, m := range s.Methods {
			dumpStmt(b, m, depth+1)
		}
	case *Return:
		b.WriteString("return\n")
		if s.Value != nil {
			dumpExpr(b, s.Value, depth+1)
		}
	default:
		b.WriteString("?stmt\n")
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch x := e.(type) {
	case *Literal:
		fmt.Fprintf(b, "lit %s\n", literalRepr(x.Value))
	case *Var:
		fmt.Fprintf(b, "var %s\n", x.Name)
	case *AssignVar:
		fmt.Fprintf(b, "assign %s\n", x.Name)
		dumpExpr(b, x.Value, depth+1)
	case *BinOp:
		fmt.Fprintf(b, "binop %s\n", opLexeme(x.Op))
		dumpExpr(b, x.Left, depth+1)
		dumpExpr(b, x.Right, depth+1)
	case *Logical:
		if x.Op == AND {
			b.WriteString("and\n")
		} else {
			b.WriteString("or\n")
		}
		dumpExpr(b, x.Left, depth+1)
		dumpExpr(b, x.Right, depth+1)
	case *UnaryOp:
		fmt.Fprintf(b, "unary %s\n", opLexeme(x.Op))
		dumpExpr(b, x.Operand, depth+1)
	case *Call:
		b.WriteString("call\n")
		dumpExpr(b, x.Callee, depth+1)
		for _, a := range x.Args {
			dumpExpr(b, a, depth+1)
		}
	case *Getattr:
		fmt.Fprintf(b, "get %s\n", x.Name)
		dumpExpr(b, x.Obj, depth+1)
	case *Setattr:
		fmt.Fprintf(b, "set %s\n", x.Name)
		dumpExpr(b, x.Value, depth+1)
		dumpExpr(b, x.Obj, depth+1)
	case *This:
		b.WriteString("this\n")
	case *Super:
		fmt.Fprintf(b, "super.%s\n", x.Method)
	default:
		b.WriteString("?expr\n")
	}
}

// literalRepr quotes strings so `lit "1"` and `lit 1` stay distinguishable.
func literalRepr(v Value) string {
	if v.Tag == VTStr {
		return strconv.Quote(v.Data.(string))
	}
	return Stringify(v)
}

func opLexeme(t TokenType) string {
	switch t {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case BANG:
		return "!"
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case LESS:
		return "<"
	case LESS_EQ:
		return "<="
	case GREATER:
		return ">"
	case GREATER_EQ:
		return ">="
	default:
		return "?"
	}
}
