package hook

import "context"

// Static chains are fixed-arity compositions whose hook types are resolved
// at compile time, so the per-hook calls carry no interface indirection.
// They execute the same algorithm as Run and are behaviorally
// indistinguishable from a Chain holding the same hooks.
//
// The event type parameter is given explicitly and the hook types are
// inferred:
//
//	chain := hook.NewStatic2[order](validate, persist)

// Static2 is a compile-time composition of two hooks.
type Static2[E any, H0 Hook[E], H1 Hook[E]] struct {
	First  H0
	Second H1
}

// NewStatic2 composes two hooks.
func NewStatic2[E any, H0 Hook[E], H1 Hook[E]](first H0, second H1) Static2[E, H0, H1] {
	return Static2[E, H0, H1]{First: first, Second: second}
}

// OnEvent implements Hook.
func (s Static2[E, H0, H1]) OnEvent(ctx context.Context, evt E) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Stop, err
	}
	res, err := s.First.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Second.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	return res, nil
}

// Static3 is a compile-time composition of three hooks.
type Static3[E any, H0 Hook[E], H1 Hook[E], H2 Hook[E]] struct {
	First  H0
	Second H1
	Third  H2
}

// NewStatic3 composes three hooks.
func NewStatic3[E any, H0 Hook[E], H1 Hook[E], H2 Hook[E]](first H0, second H1, third H2) Static3[E, H0, H1, H2] {
	return Static3[E, H0, H1, H2]{First: first, Second: second, Third: third}
}

// OnEvent implements Hook.
func (s Static3[E, H0, H1, H2]) OnEvent(ctx context.Context, evt E) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Stop, err
	}
	res, err := s.First.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Second.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Third.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	return res, nil
}

// Static4 is a compile-time composition of four hooks.
type Static4[E any, H0 Hook[E], H1 Hook[E], H2 Hook[E], H3 Hook[E]] struct {
	First  H0
	Second H1
	Third  H2
	Fourth H3
}

// NewStatic4 composes four hooks.
func NewStatic4[E any, H0 Hook[E], H1 Hook[E], H2 Hook[E], H3 Hook[E]](first H0, second H1, third H2, fourth H3) Static4[E, H0, H1, H2, H3] {
	return Static4[E, H0, H1, H2, H3]{First: first, Second: second, Third: third, Fourth: fourth}
}

// OnEvent implements Hook.
func (s Static4[E, H0, H1, H2, H3]) OnEvent(ctx context.Context, evt E) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Stop, err
	}
	res, err := s.First.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Second.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Third.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	if res == Stop {
		return Stop, nil
	}
	res, err = s.Fourth.OnEvent(ctx, evt)
	if err != nil {
		return Stop, err
	}
	return res, nil
}
