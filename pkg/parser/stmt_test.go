package parser

import (
	"testing"

	"github.com/jpshackelford/ralph-cc-go/pkg/cabs"
	"github.com/jpshackelford/ralph-cc-go/pkg/lexer"
)

// bodyOf parses a function definition and returns its body items.
func bodyOf(t *testing.T, input string) []cabs.Stmt {
	t.Helper()

	def := parseOne(t, input)
	funDef, ok := def.(cabs.FunDef)
	if !ok {
		t.Fatalf("expected FunDef, got %T", def)
	}
	return funDef.Body.Items
}

func TestIfStatement(t *testing.T) {
	items := bodyOf(t, "int f(int n) { if (n > 0) return 1; }")

	ifStmt, ok := items[0].(cabs.If)
	if !ok {
		t.Fatalf("expected If, got %T", items[0])
	}
	if ifStmt.Else != nil {
		t.Error("expected no else branch")
	}
	if _, ok := ifStmt.Then.(cabs.Return); !ok {
		t.Errorf("expected Return then-branch, got %T", ifStmt.Then)
	}
}

func TestIfElseStatement(t *testing.T) {
	items := bodyOf(t, "int f(int n) { if (n > 0) return 1; else return -1; }")

	ifStmt := items[0].(cabs.If)
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
	if _, ok := ifStmt.Else.(cabs.Return); !ok {
		t.Errorf("expected Return else-branch, got %T", ifStmt.Else)
	}
}

func TestDanglingElse(t *testing.T) {
	// The else must bind to the innermost if.
	items := bodyOf(t, "int f(int n) { if (n > 0) if (n > 10) return 2; else return 1; }")

	outer := items[0].(cabs.If)
	if outer.Else != nil {
		t.Fatal("else bound to the outer if")
	}
	inner, ok := outer.Then.(cabs.If)
	if !ok {
		t.Fatalf("expected nested If, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatal("else missing from the inner if")
	}
}

func TestWhileStatement(t *testing.T) {
	items := bodyOf(t, "int f(int n) { while (n > 0) n--; return n; }")

	while, ok := items[0].(cabs.While)
	if !ok {
		t.Fatalf("expected While, got %T", items[0])
	}
	if _, ok := while.Body.(cabs.Computation); !ok {
		t.Errorf("expected Computation body, got %T", while.Body)
	}
}

func TestDoWhileStatement(t *testing.T) {
	items := bodyOf(t, "int f(int n) { do n++; while (n < 10); return n; }")

	doWhile, ok := items[0].(cabs.DoWhile)
	if !ok {
		t.Fatalf("expected DoWhile, got %T", items[0])
	}
	cond, ok := doWhile.Cond.(cabs.Binary)
	if !ok {
		t.Fatalf("expected Binary condition, got %T", doWhile.Cond)
	}
	if cond.Op != cabs.OpLt {
		t.Errorf("wrong op: expected OpLt, got %v", cond.Op)
	}
}

func TestForStatement(t *testing.T) {
	items := bodyOf(t, "int f(void) { int i, s; for (i = 0; i < 10; i++) s += i; return s; }")

	forStmt, ok := items[1].(cabs.For)
	if !ok {
		t.Fatalf("expected For, got %T", items[1])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Step == nil {
		t.Error("expected all three clauses present")
	}
	if len(forStmt.InitDecl) != 0 {
		t.Errorf("expected no declaration init, got %d decls", len(forStmt.InitDecl))
	}
}

func TestForWithDeclaration(t *testing.T) {
	items := bodyOf(t, "int f(void) { int s = 0; for (int i = 0; i < 10; i++) s += i; return s; }")

	forStmt := items[1].(cabs.For)
	if len(forStmt.InitDecl) != 1 {
		t.Fatalf("expected 1 init declaration, got %d", len(forStmt.InitDecl))
	}
	if forStmt.InitDecl[0].Name != "i" {
		t.Errorf("expected declared name 'i', got %q", forStmt.InitDecl[0].Name)
	}
	if forStmt.Init != nil {
		t.Error("expression init must be nil when a declaration is present")
	}
}

func TestForEmptyClauses(t *testing.T) {
	items := bodyOf(t, "int f(void) { for (;;) break; return 0; }")

	forStmt := items[0].(cabs.For)
	if forStmt.Init != nil || forStmt.Cond != nil || forStmt.Step != nil || len(forStmt.InitDecl) != 0 {
		t.Error("expected all clauses empty")
	}
	if _, ok := forStmt.Body.(cabs.Break); !ok {
		t.Errorf("expected Break body, got %T", forStmt.Body)
	}
}

func TestBreakAndContinue(t *testing.T) {
	items := bodyOf(t, "int f(int n) { while (n) { if (n == 5) continue; if (n == 8) break; } return n; }")

	while := items[0].(cabs.While)
	block := while.Body.(cabs.Block)

	first := block.Items[0].(cabs.If)
	if _, ok := first.Then.(cabs.Continue); !ok {
		t.Errorf("expected Continue, got %T", first.Then)
	}
	second := block.Items[1].(cabs.If)
	if _, ok := second.Then.(cabs.Break); !ok {
		t.Errorf("expected Break, got %T", second.Then)
	}
}

func TestSwitchStatement(t *testing.T) {
	input := `int f(int n) {
	switch (n) {
	case 0:
		return 0;
	case 1:
	case 2:
		return 1;
	default:
		return -1;
	}
}`
	items := bodyOf(t, input)

	sw, ok := items[0].(cabs.Switch)
	if !ok {
		t.Fatalf("expected Switch, got %T", items[0])
	}
	if len(sw.Cases) != 4 {
		t.Fatalf("expected 4 case groups, got %d", len(sw.Cases))
	}

	// case 1: falls through to case 2 with no statements of its own.
	if len(sw.Cases[1].Stmts) != 0 {
		t.Errorf("expected empty fall-through group, got %d statements", len(sw.Cases[1].Stmts))
	}
	if len(sw.Cases[2].Stmts) != 1 {
		t.Errorf("expected 1 statement in case 2, got %d", len(sw.Cases[2].Stmts))
	}

	// default has nil Expr.
	if sw.Cases[3].Expr != nil {
		t.Error("expected nil Expr for default")
	}
}

func TestSwitchRequiresCaseLabel(t *testing.T) {
	mustFail(t, "int f(int n) { switch (n) { return 0; } }")
}

func TestGotoAndLabel(t *testing.T) {
	items := bodyOf(t, "int f(int n) { if (n < 0) goto fail; return n; fail: return -1; }")

	ifStmt := items[0].(cabs.If)
	gotoStmt, ok := ifStmt.Then.(cabs.Goto)
	if !ok {
		t.Fatalf("expected Goto, got %T", ifStmt.Then)
	}
	if gotoStmt.Label != "fail" {
		t.Errorf("expected label 'fail', got %q", gotoStmt.Label)
	}

	label, ok := items[2].(cabs.Label)
	if !ok {
		t.Fatalf("expected Label, got %T", items[2])
	}
	if label.Name != "fail" {
		t.Errorf("expected label name 'fail', got %q", label.Name)
	}
	if _, ok := label.Stmt.(cabs.Return); !ok {
		t.Errorf("expected labeled Return, got %T", label.Stmt)
	}
}

func TestEmptyStatement(t *testing.T) {
	items := bodyOf(t, "int f(void) { ;; return 0; }")

	if _, ok := items[0].(cabs.Empty); !ok {
		t.Errorf("expected Empty, got %T", items[0])
	}
	if _, ok := items[1].(cabs.Empty); !ok {
		t.Errorf("expected Empty, got %T", items[1])
	}
}

func TestNestedBlocks(t *testing.T) {
	items := bodyOf(t, "int f(void) { { int inner = 1; } return 0; }")

	block, ok := items[0].(cabs.Block)
	if !ok {
		t.Fatalf("expected Block, got %T", items[0])
	}
	if len(block.Items) != 1 {
		t.Errorf("expected 1 inner statement, got %d", len(block.Items))
	}
}

func TestLocalDeclarations(t *testing.T) {
	items := bodyOf(t, "int f(void) { int x = 0, y = 1, z; return x + y; }")

	declStmt, ok := items[0].(cabs.DeclStmt)
	if !ok {
		t.Fatalf("expected DeclStmt, got %T", items[0])
	}
	if len(declStmt.Decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(declStmt.Decls))
	}
	if declStmt.Decls[2].Init != nil {
		t.Error("expected z to have no initializer")
	}
}

func TestLocalStaticDeclaration(t *testing.T) {
	items := bodyOf(t, "int f(void) { static int count = 0; return count++; }")

	declStmt := items[0].(cabs.DeclStmt)
	if declStmt.Decls[0].Storage != "static" {
		t.Errorf("expected storage 'static', got %q", declStmt.Decls[0].Storage)
	}
}

func TestExpressionStatement(t *testing.T) {
	items := bodyOf(t, "int f(int x) { x = x + 1; return x; }")

	comp, ok := items[0].(cabs.Computation)
	if !ok {
		t.Fatalf("expected Computation, got %T", items[0])
	}
	binary := comp.Expr.(cabs.Binary)
	if binary.Op != cabs.OpAssign {
		t.Errorf("wrong op: expected OpAssign, got %v", binary.Op)
	}
}

// mustFail parses input that is expected to be rejected and returns
// the error.
func mustFail(t *testing.T, input string) error {
	t.Helper()

	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()

	if program != nil {
		t.Error("expected nil program")
	}
	if p.Err() == nil {
		t.Fatal("expected an error")
	}
	return p.Err()
}
