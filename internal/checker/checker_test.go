package checker_test

import (
	"testing"

	"github.com/gotsc/gotsc/internal/atom"
	"github.com/gotsc/gotsc/internal/binder"
	"github.com/gotsc/gotsc/internal/checker"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/parser"
	"github.com/gotsc/gotsc/internal/types"
)

func checkSource(t *testing.T, src string, opts checker.Options) *diagnostics.Bag {
	t.Helper()
	in := atom.New()
	diags := &diagnostics.Bag{}
	tree, root := parser.ParseSourceFile("test.ts", src, in, diags, false)
	bind := binder.Bind(tree, "test.ts", root, diags)
	ti := types.New(in)
	c := checker.New(tree, "test.ts", bind, ti, in, diags, opts)
	c.Check(root)
	return diags
}

func codes(diags *diagnostics.Bag) []diagnostics.Code {
	var out []diagnostics.Code
	for _, d := range diags.Sorted() {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(diags *diagnostics.Bag, code diagnostics.Code) bool {
	for _, c := range codes(diags) {
		if c == code {
			return true
		}
	}
	return false
}

func TestCheckAssignabilityRejectsMismatch(t *testing.T) {
	diags := checkSource(t, `let x: number = "hi";`, checker.Options{})
	if !hasCode(diags, diagnostics.CodeTypeNotAssignable) {
		t.Fatalf("expected 2322, got %v", codes(diags))
	}
}

func TestCheckAssignabilityAcceptsMatch(t *testing.T) {
	diags := checkSource(t, `let x: number = 1;`, checker.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", codes(diags))
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	diags := checkSource(t, `function f(): string { return 1; }`, checker.Options{})
	if !hasCode(diags, diagnostics.CodeTypeNotAssignable) {
		t.Fatalf("expected 2322 on return, got %v", codes(diags))
	}
}

func TestCheckMethodReturnTypeMismatch(t *testing.T) {
	diags := checkSource(t, `
		class C {
			m(): string { return 1; }
		}
	`, checker.Options{})
	if !hasCode(diags, diagnostics.CodeTypeNotAssignable) {
		t.Fatalf("expected 2322 on method return, got %v", codes(diags))
	}
}

func TestCheckNoImplicitAnyOnUntypedParameter(t *testing.T) {
	diags := checkSource(t, `function f(a) { return a; }`, checker.Options{NoImplicitAny: true})
	if !hasCode(diags, diagnostics.CodeImplicitAny) {
		t.Fatalf("expected 7006, got %v", codes(diags))
	}
}

func TestCheckNoImplicitAnyOffByDefault(t *testing.T) {
	diags := checkSource(t, `function f(a) { return a; }`, checker.Options{})
	if hasCode(diags, diagnostics.CodeImplicitAny) {
		t.Fatalf("did not expect 7006 without NoImplicitAny, got %v", codes(diags))
	}
}

func TestCheckReachabilityDetectsDeadCodeAfterReturn(t *testing.T) {
	diags := checkSource(t, `
		function f(): number {
			return 1;
			return 2;
		}
	`, checker.Options{})
	if !hasCode(diags, diagnostics.CodeUnreachableCode) {
		t.Fatalf("expected 7027, got %v", codes(diags))
	}
}

func TestCheckReachabilityAllowsStatementAfterIfElseReturn(t *testing.T) {
	diags := checkSource(t, `
		function f(x: boolean): number {
			if (x) { return 1; } else { return 2; }
		}
		let y = 1;
	`, checker.Options{})
	if hasCode(diags, diagnostics.CodeUnreachableCode) {
		t.Fatalf("did not expect 7027, got %v", codes(diags))
	}
}

func TestCheckReachabilityWhileTrueWithoutBreakKillsFollowingCode(t *testing.T) {
	diags := checkSource(t, `
		function f() {
			while (true) {}
			let y = 1;
		}
	`, checker.Options{})
	if !hasCode(diags, diagnostics.CodeUnreachableCode) {
		t.Fatalf("expected 7027 after infinite while(true), got %v", codes(diags))
	}
}

func TestCheckReachabilityWhileTrueWithBreakAllowsFollowingCode(t *testing.T) {
	diags := checkSource(t, `
		function f() {
			while (true) { break; }
			let y = 1;
		}
	`, checker.Options{})
	if hasCode(diags, diagnostics.CodeUnreachableCode) {
		t.Fatalf("did not expect 7027 when loop has a break, got %v", codes(diags))
	}
}

func TestCheckSoundAnyEscapeOnlyUnderSoundMode(t *testing.T) {
	src := `
		function identity(a): any { return a; }
		let n: number = identity(1);
	`
	plain := checkSource(t, src, checker.Options{})
	if hasCode(plain, diagnostics.CodeSoundAnyEscape) {
		t.Fatalf("did not expect 9004 without Sound, got %v", codes(plain))
	}

	sound := checkSource(t, src, checker.Options{Sound: true})
	if !hasCode(sound, diagnostics.CodeSoundAnyEscape) {
		t.Fatalf("expected 9004 under Sound, got %v", codes(sound))
	}
}

func TestCheckSoundMethodBivariance(t *testing.T) {
	diags := checkSource(t, `
		class Animal {}
		class Dog extends Animal {}
		class Handler {
			handle(a: Animal): void {}
		}
		class DogHandler extends Handler {
			handle(a: Dog): void {}
		}
	`, checker.Options{Sound: true})
	if !hasCode(diags, diagnostics.CodeSoundMethodBivariance) {
		t.Fatalf("expected 9002 on narrowed override parameter, got %v", codes(diags))
	}
}
