package lox

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

// runSrc executes a whole program and returns everything it printed.
func runSrc(t *testing.T, src string) string {
	t.Helper()
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out
	if err := ip.RunSource("<test>", src); err != nil {
		t.Fatalf("RunSource error: %v\nsource:\n%s", err, src)
	}
	return out.String()
}

// wantOutput asserts the printed lines of a program.
func wantOutput(t *testing.T, src string, lines ...string) {
	t.Helper()
	got := runSrc(t, src)
	want := ""
	if len(lines) > 0 {
		want = strings.Join(lines, "\n") + "\n"
	}
	if got != want {
		t.Fatalf("output mismatch\nsource:\n%s\nwant:\n%q\ngot:\n%q", src, want, got)
	}
}

// wantFault asserts that a program faults with the given kind.
func wantFault(t *testing.T, src string, kind FaultKind) *RuntimeError {
	t.Helper()
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out
	prog, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	err = ip.RunProgram(prog)
	if err == nil {
		t.Fatalf("want %s fault, program succeeded\nsource:\n%s", kind, src)
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if re.Kind != kind {
		t.Fatalf("want fault %s, got %s (%s)", kind, re.Kind, re.Msg)
	}
	return re
}

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource error: %v\nsource:\n%s", err, src)
	}
	return v
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTNum || v.Data.(float64) != f {
		t.Fatalf("want num %g, got %#v", f, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

// --- expressions -----------------------------------------------------------

func TestArithmetic(t *testing.T) {
	wantNum(t, evalSrc(t, "1 + 2 * 3;"), 7)
	wantNum(t, evalSrc(t, "(1 + 2) * 3;"), 9)
	wantNum(t, evalSrc(t, "10 / 4;"), 2.5)
	wantNum(t, evalSrc(t, "-3 + 1;"), -2)
	wantStr(t, evalSrc(t, `"foo" + "bar";`), "foobar")
}

func TestComparisonAndEquality(t *testing.T) {
	wantBool(t, evalSrc(t, "1 < 2;"), true)
	wantBool(t, evalSrc(t, "2 <= 2;"), true)
	wantBool(t, evalSrc(t, "3 > 4;"), false)
	wantBool(t, evalSrc(t, `"abc" < "abd";`), true)
	wantBool(t, evalSrc(t, "1 == 1;"), true)
	wantBool(t, evalSrc(t, `1 == "1";`), false)
	wantBool(t, evalSrc(t, "nil == nil;"), true)
	wantBool(t, evalSrc(t, "nil != false;"), true)
}

func TestTruthiness(t *testing.T) {
	// Only nil and false are falsy; 0 and "" are truthy.
	wantOutput(t, `if (0) print "yes"; else print "no";`, "yes")
	wantOutput(t, `if ("") print "yes"; else print "no";`, "yes")
	wantOutput(t, `if (nil) print "yes"; else print "no";`, "no")
	wantOutput(t, `if (false) print "yes"; else print "no";`, "no")
	wantBool(t, evalSrc(t, "!0;"), false)
	wantBool(t, evalSrc(t, "!nil;"), true)
}

func TestLogicalShortCircuit(t *testing.T) {
	// The right side must not even be evaluated.
	wantOutput(t, `
fun sideEffect() { print "called"; return true; }
print false and sideEffect();
print true or sideEffect();
`, "false", "true")

	// and/or return operand values, not coerced booleans.
	wantStr(t, evalSrc(t, `"a" or "b";`), "a")
	wantStr(t, evalSrc(t, `nil or "b";`), "b")
	wantStr(t, evalSrc(t, `"a" and "b";`), "b")
	v := evalSrc(t, `nil and "b";`)
	if v.Tag != VTNil {
		t.Fatalf("want nil, got %#v", v)
	}
}

func TestNumberFormatting(t *testing.T) {
	wantOutput(t, "print 1;", "1")
	wantOutput(t, "print 0.5;", "0.5")
	wantOutput(t, "print 2.0;", "2")
	wantOutput(t, "print 10 / 4;", "2.5")
}

// --- variables & scoping ---------------------------------------------------

func TestPrintOrderMatchesExecutionOrder(t *testing.T) {
	wantOutput(t, `
print 1;
print 2;
print 3;
`, "1", "2", "3")
}

func TestShadowingRestoredAfterBlock(t *testing.T) {
	wantOutput(t, `
var x = 1;
{
  var x = 2;
  print x;
}
print x;
`, "2", "1")
}

func TestAssignWalksToDefiningScope(t *testing.T) {
	wantOutput(t, `
var x = 1;
{
  x = 2;
}
print x;
`, "2")
}

func TestAssignUndefinedFaults(t *testing.T) {
	wantFault(t, "y = 1;", UndefinedName)
}

func TestReadUndefinedFaults(t *testing.T) {
	wantFault(t, "print nope;", UndefinedName)
}

func TestVarDefaultsToNil(t *testing.T) {
	wantOutput(t, "var x; print x;", "nil")
}

// --- control flow ----------------------------------------------------------

func TestWhile(t *testing.T) {
	wantOutput(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`, "0", "1", "2")
}

func TestFor(t *testing.T) {
	wantOutput(t, `
for (var i = 0; i < 3; i = i + 1) print i;
`, "0", "1", "2")
}

func TestForInitializerScopedToLoop(t *testing.T) {
	wantFault(t, `
for (var i = 0; i < 1; i = i + 1) {}
print i;
`, UndefinedName)
}

func TestForClosuresShareLoopVariable(t *testing.T) {
	// The loop variable lives in one scope shared by all iterations, so
	// closures created in the body observe its final value.
	wantOutput(t, `
var f;
for (var i = 0; i < 3; i = i + 1) {
  if (i == 0) {
    fun get() { return i; }
    f = get;
  }
}
print f();
`, "3")
}

// --- functions & closures --------------------------------------------------

func TestFunctionReturn(t *testing.T) {
	wantOutput(t, `
fun add(a, b) { return a + b; }
print add(1, 2);
`, "3")
}

func TestFallthroughReturnsNil(t *testing.T) {
	wantOutput(t, `
fun noop() {}
print noop();
`, "nil")
}

func TestReturnUnwindsNestedBlocksAndLoops(t *testing.T) {
	wantOutput(t, `
fun find() {
  for (var i = 0; i < 10; i = i + 1) {
    if (i == 4) {
      { return i; }
    }
  }
  return -1;
}
print find();
`, "4")
}

func TestRecursion(t *testing.T) {
	wantOutput(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`, "55")
}

func TestCounterFactoryClosure(t *testing.T) {
	wantOutput(t, `
fun makeCounter() {
  var n = 0;
  fun inc() {
    n = n + 1;
    return n;
  }
  return inc;
}
var a = makeCounter();
var b = makeCounter();
print a();
print a();
print b();
`, "1", "2", "1")
}

func TestTwoClosuresShareOneScope(t *testing.T) {
	wantOutput(t, `
var get; var set;
{
  var v = 10;
  fun g() { return v; }
  fun s(x) { v = x; }
  get = g; set = s;
}
set(42);
print get();
`, "42")
}

func TestClosureCapturesDefiningEnvNotCallers(t *testing.T) {
	wantOutput(t, `
var x = "global";
fun show() { print x; }
fun caller() {
  var x = "local";
  show();
}
caller();
`, "global")
}

func TestDeferredNameLookupAtCallTime(t *testing.T) {
	// The function references a name defined after the declaration; lookup
	// happens at call time against the captured scope chain.
	wantOutput(t, `
fun shout() { print msg; }
var msg = "hi";
shout();
`, "hi")
}

func TestArityMismatch(t *testing.T) {
	wantFault(t, "fun f(a, b) {} f(1);", ArityMismatch)
	wantFault(t, "fun f() {} f(1, 2);", ArityMismatch)
	wantFault(t, "clock(1);", ArityMismatch)
}

func TestNotCallable(t *testing.T) {
	wantFault(t, `"nope"(1);`, NotCallable)
	wantFault(t, "var x = 3; x();", NotCallable)
}

func TestCallEvaluatesArgsLeftToRight(t *testing.T) {
	wantOutput(t, `
fun tag(n) { print n; return n; }
fun sum(a, b, c) { return a + b + c; }
print sum(tag(1), tag(2), tag(3));
`, "1", "2", "3", "6")
}

// --- type faults -----------------------------------------------------------

func TestTypeMismatch(t *testing.T) {
	wantFault(t, `print 1 + "a";`, TypeMismatch)
	wantFault(t, `print "a" - "b";`, TypeMismatch)
	wantFault(t, `print 1 < "a";`, TypeMismatch)
	wantFault(t, "print -nil;", TypeMismatch)
}

func TestBothBinOpOperandsEvaluated(t *testing.T) {
	// Unlike and/or, arithmetic always evaluates both sides left-to-right.
	wantOutput(t, `
fun l() { print "l"; return 1; }
fun r() { print "r"; return 2; }
print l() + r();
`, "l", "r", "3")
}

// --- classes ---------------------------------------------------------------

func TestClassInstantiationAndFields(t *testing.T) {
	wantOutput(t, `
class Point {}
var p = Point();
p.x = 3;
p.y = 4;
print p.x + p.y;
`, "7")
}

func TestMethodsAndThis(t *testing.T) {
	wantOutput(t, `
class Greeter {
  init(name) { this.name = name; }
  greet() { return "hello " + this.name; }
}
print Greeter("world").greet();
`, "hello world")
}

func TestInitReturnDiscarded(t *testing.T) {
	wantOutput(t, `
class A {
  init() { this.v = 1; return 99; }
}
var a = A();
print a.v;
`, "1")
}

func TestClassCallYieldsInstance(t *testing.T) {
	wantOutput(t, `
class A {}
print A();
`, "<instance of A>")
}

func TestFieldsShadowMethods(t *testing.T) {
	wantOutput(t, `
class A {
  f() { return "method"; }
}
var a = A();
print a.f();
a.f = "field";
print a.f;
`, "method", "field")
}

func TestBoundMethodKeepsReceiver(t *testing.T) {
	wantOutput(t, `
class A {
  init() { this.n = 7; }
  get() { return this.n; }
}
var m = A().get;
print m();
`, "7")
}

func TestGetattrFaults(t *testing.T) {
	wantFault(t, `class A {} print A().nope;`, NoSuchAttribute)
	wantFault(t, `print "str".field;`, NotAnObject)
	wantFault(t, `class A {} print A.field;`, NotAnObject)
	wantFault(t, `var x = 1; x.field = 2;`, NotAnObject)
}

func TestSetattrReturnsValueAndEvaluatesValueFirst(t *testing.T) {
	wantOutput(t, `
class A {}
var a = A();
fun v() { print "value"; return 1; }
fun o() { print "object"; return a; }
print o().f = v();
`, "value", "object", "1")
}

func TestThisOutsideMethodFaults(t *testing.T) {
	wantFault(t, "print this;", UndefinedName)
}

// --- inheritance & super ---------------------------------------------------

func TestInheritedMethod(t *testing.T) {
	wantOutput(t, `
class A { hi() { return "A"; } }
class B < A {}
print B().hi();
`, "A")
}

func TestOverrideWins(t *testing.T) {
	wantOutput(t, `
class A { hi() { return "A"; } }
class B < A { hi() { return "B"; } }
print B().hi();
`, "B")
}

func TestSuperReachesImmediateSuperclass(t *testing.T) {
	wantOutput(t, `
class A { greet() { return "A"; } }
class B < A { greet() { return super.greet() + "B"; } }
print B().greet();
`, "AB")
}

func TestSuperIsStaticNotDynamic(t *testing.T) {
	// super in A's method resolves above A, even when the receiver is a C.
	wantOutput(t, `
class A { m() { return "A"; } }
class B < A { m() { return "B > " + super.m(); } }
class C < B { m() { return "C > " + super.m(); } }
print C().m();
`, "C > B > A")
}

func TestSuperChainThreeLevels(t *testing.T) {
	wantOutput(t, `
class A { who() { return "A"; } }
class B < A { who() { return super.who() + "B"; } }
class C < B { who() { return super.who() + "C"; } }
print C().who();
`, "ABC")
}

func TestInheritedInit(t *testing.T) {
	wantOutput(t, `
class A { init(v) { this.v = v; } }
class B < A {}
print B(5).v;
`, "5")
}

func TestSuperInInit(t *testing.T) {
	wantOutput(t, `
class A { init() { this.base = "a"; } }
class B < A {
  init() {
    super.init();
    this.extra = "b";
  }
}
var b = B();
print b.base + b.extra;
`, "ab")
}

func TestSuperFaults(t *testing.T) {
	wantFault(t, `
class A { m() { return super.m(); } }
A().m();
`, NoSuperclass)
	wantFault(t, `
class A {}
class B < A { m() { return super.nope(); } }
B().m();
`, NoSuchAttribute)
}

func TestSuperclassMustBeClass(t *testing.T) {
	wantFault(t, `
var NotAClass = 3;
class B < NotAClass {}
`, TypeMismatch)
	wantFault(t, "class A < A {}", UndefinedName)
}

func TestMethodsSeeDeclarationScope(t *testing.T) {
	wantOutput(t, `
var suffix = "!";
class A {
  hi() { return "hi" + suffix; }
}
print A().hi();
`, "hi!")
}

// --- natives ---------------------------------------------------------------

func TestNativeStrAndLen(t *testing.T) {
	wantOutput(t, `print str(1 + 2);`, "3")
	wantOutput(t, `print len("hello");`, "5")
	wantFault(t, "len(3);", TypeMismatch)
}

func TestClockIsANumber(t *testing.T) {
	v := evalSrc(t, "clock();")
	if v.Tag != VTNum || v.Data.(float64) <= 0 {
		t.Fatalf("want positive number from clock(), got %#v", v)
	}
}

func TestRegisterNative(t *testing.T) {
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out
	ip.RegisterNative("twice", 1, func(ip *Interpreter, args []Value) Value {
		return NumVal(args[0].Data.(float64) * 2)
	})
	if err := ip.RunSource("<test>", "print twice(21);"); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if got := out.String(); got != "42\n" {
		t.Fatalf("want 42, got %q", got)
	}
}

// --- REPL surface ----------------------------------------------------------

func TestEvalSourceEchoesTrailingExpression(t *testing.T) {
	wantNum(t, evalSrc(t, "var x = 2; x * 3;"), 6)
	v := evalSrc(t, "var x = 2;")
	if v.Tag != VTNil {
		t.Fatalf("declaration should echo nil, got %#v", v)
	}
}

func TestGlobalStatePersistsAcrossEvals(t *testing.T) {
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	if _, err := ip.EvalSource("var n = 1;"); err != nil {
		t.Fatal(err)
	}
	if _, err := ip.EvalSource("n = n + 1;"); err != nil {
		t.Fatal(err)
	}
	v, err := ip.EvalSource("n;")
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 2)
}

// --- fault positions -------------------------------------------------------

func TestFaultCarriesPosition(t *testing.T) {
	re := wantFault(t, "var x = 1;\nprint nope;", UndefinedName)
	if re.Line != 2 {
		t.Fatalf("want fault on line 2, got line %d", re.Line)
	}
}
