package abd

// Conditional is a simple strategy for choosing an Invoker at runtime,
// e.g. turning decoration on or off from configuration.
type Conditional struct {
}

// Then returns the given Invoker if this Conditional is not nil.
// If this Conditional is nil, it returns Passthrough.
func (c *Conditional) Then(inv Invoker) Invoker {
	if c != nil && inv != nil {
		return inv
	}

	return Passthrough{}
}

// If returns a non-nil Conditional if its sole argument is true.
//
//	inv := abd.If(cfg.Enabled).Then(abdlog.New(logger))
//	add, err := abd.Decorate(add, inv)
func If(f bool) *Conditional {
	if f {
		return new(Conditional)
	}

	return nil
}

// IfNot is the boolean inverse of If
func IfNot(f bool) *Conditional {
	if !f {
		return new(Conditional)
	}

	return nil
}
