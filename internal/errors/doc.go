// Package errors provides structured, actionable error messages for the
// hooks runtime.
//
// Every hook misuse the runtime detects is reported as a *HookError carrying
// a stable code, the slot position involved and the source location of the
// offending hook call:
//
//   - runtime: hook discipline violations (hook outside a render cycle,
//     changed hook order, slot type mismatch, reentrant render)
//   - deps: dependency list violations
//   - config: configuration loading and validation
//   - cli: command line usage
//
// # Error Codes
//
// Each code (e.g. "H002") maps to a template with a short message, a
// detailed explanation and a documentation URL.
//
// # Usage
//
//	err := errors.New("H002").
//	    AtSlot(3).
//	    WithDetail("expected State, got Effect").
//	    WithSuggestion("Move the hook call out of the conditional")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR H002: Hook order changed between render cycles
//	//
//	//   counter.go:21 (slot 3)
//	//
//	//     19 │ func Counter() *View {
//	//     20 │     if show {
//	//   → 21 │         hooks.UseEffect(rt, log, n)
//	//     22 │     }
//	//     23 │ }
//	//
//	//   Hint: Move the hook call out of the conditional
package errors
