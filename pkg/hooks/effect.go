package hooks

import (
	"math"
	"reflect"

	"github.com/vango-dev/hookrt/internal/errors"
)

// UseEffect calls callback during the cycle when the effect slot is first
// visited, and on later cycles when any of deps differs from the value at
// the same index on the previous cycle. Values are compared by identity,
// see sameValue.
//
// An effect with no deps fires on the first cycle only. When the number of
// deps changes, the effect fires and a warning is logged; with
// WithStrictDeps the cycle aborts with ErrDepsArity instead.
//
// There is no cleanup protocol. Hooks must not be called from callback.
func UseEffect(in *Instance, callback func(), deps ...any) {
	pos := in.enter(KindEffect)
	next := append([]any(nil), deps...)

	fire := true
	if prev, ok := in.store.Lookup(pos); ok {
		prevDeps, _ := prev.([]any)
		if len(prevDeps) != len(next) {
			if in.strictDeps {
				panic(errors.New("H004").
					AtSlot(pos).
					Because("had %d dependencies, now %d", len(prevDeps), len(next)).
					WithCaller(1))
			}
			in.logger.Warn("effect dependency list changed length",
				"slot", pos,
				"previous", len(prevDeps),
				"current", len(next),
			)
		} else {
			fire = depsChanged(prevDeps, next)
		}
	}

	if fire && callback != nil {
		in.cycle.EffectsFired++
		in.inBody = false
		callback()
		in.inBody = true
	}

	in.store.put(pos, KindEffect, next)
}

// depsChanged reports whether any element differs by index. Lengths must
// be equal.
func depsChanged(prev, next []any) bool {
	for i := range next {
		if !sameValue(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// sameValue reports whether a and b are the same value:
//   - comparable values use ==, except that NaN equals NaN and +0 differs
//     from -0
//   - slices are the same when they share backing array and length, maps
//     when they are the same map
//   - functions and other incomparable values are never the same
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
