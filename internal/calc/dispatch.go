package calc

import "strings"

// Func computes a binary operation. Single-argument operations ignore b.
type Func func(a, b float64) (float64, error)

// Dispatcher resolves operation names to functions. Lookup is
// case-insensitive.
type Dispatcher struct {
	names []string
	funcs map[string]Func
}

// NewDispatcher creates a Dispatcher with all built-in operations
// registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{funcs: make(map[string]Func)}
	d.Register("add", func(a, b float64) (float64, error) { return Add(a, b), nil })
	d.Register("subtract", func(a, b float64) (float64, error) { return Subtract(a, b), nil })
	d.Register("multiply", func(a, b float64) (float64, error) { return Multiply(a, b), nil })
	d.Register("divide", Divide)
	d.Register("power", Power)
	d.Register("modulus", Modulus)
	d.Register("square_root", func(a, _ float64) (float64, error) { return SquareRoot(a) })
	d.Register("nth_root", NthRoot)
	return d
}

// Register adds an operation under the given name, replacing any
// previous registration.
func (d *Dispatcher) Register(name string, fn Func) {
	name = strings.ToLower(name)
	if _, ok := d.funcs[name]; !ok {
		d.names = append(d.names, name)
	}
	d.funcs[name] = fn
}

// Calculate runs the named operation on a and b.
func (d *Dispatcher) Calculate(operation string, a, b float64) (float64, error) {
	name := strings.ToLower(operation)
	fn, ok := d.funcs[name]
	if !ok {
		return 0, &InvalidOperationError{Operation: name, Supported: d.SupportedOperations()}
	}
	return fn(a, b)
}

// SupportedOperations lists operation names in registration order.
func (d *Dispatcher) SupportedOperations() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}
