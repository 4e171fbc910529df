package calc

import "math"

// Strategy computes one operation type for stored calculations.
type Strategy interface {
	Compute(a, b float64) (float64, error)
	Name() string
}

// AdditionStrategy implements the add operation.
type AdditionStrategy struct{}

func (AdditionStrategy) Compute(a, b float64) (float64, error) { return Add(a, b), nil }

func (AdditionStrategy) Name() string { return "add" }

// SubtractionStrategy implements the subtract operation.
type SubtractionStrategy struct{}

func (SubtractionStrategy) Compute(a, b float64) (float64, error) { return Subtract(a, b), nil }

func (SubtractionStrategy) Name() string { return "subtract" }

// MultiplicationStrategy implements the multiply operation.
type MultiplicationStrategy struct{}

func (MultiplicationStrategy) Compute(a, b float64) (float64, error) { return Multiply(a, b), nil }

func (MultiplicationStrategy) Name() string { return "multiply" }

// DivisionStrategy implements the divide operation.
type DivisionStrategy struct{}

func (DivisionStrategy) Compute(a, b float64) (float64, error) { return Divide(a, b) }

func (DivisionStrategy) Name() string { return "divide" }

// Factory maps operation types to calculation strategies.
type Factory struct {
	names      []string
	strategies map[string]Strategy
}

// NewFactory creates a Factory with the four basic strategies
// registered.
func NewFactory() *Factory {
	f := &Factory{strategies: make(map[string]Strategy)}
	f.Register("add", AdditionStrategy{})
	f.Register("subtract", SubtractionStrategy{})
	f.Register("multiply", MultiplicationStrategy{})
	f.Register("divide", DivisionStrategy{})
	return f
}

// Register adds a strategy under the given operation type, replacing
// any previous registration.
func (f *Factory) Register(operationType string, strategy Strategy) {
	if _, ok := f.strategies[operationType]; !ok {
		f.names = append(f.names, operationType)
	}
	f.strategies[operationType] = strategy
}

// GetStrategy returns the strategy for the given operation type.
func (f *Factory) GetStrategy(operationType string) (Strategy, error) {
	strategy, ok := f.strategies[operationType]
	if !ok {
		return nil, &UnsupportedOperationError{Type: operationType}
	}
	return strategy, nil
}

// Calculate computes a and b with the strategy registered for the
// given operation type.
func (f *Factory) Calculate(operationType string, a, b float64) (float64, error) {
	strategy, err := f.GetStrategy(operationType)
	if err != nil {
		return 0, err
	}
	return strategy.Compute(a, b)
}

// SupportedOperations lists operation types in registration order.
func (f *Factory) SupportedOperations() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// PowerStrategy implements exponentiation. It is not registered by
// default.
type PowerStrategy struct{}

func (PowerStrategy) Compute(a, b float64) (float64, error) { return math.Pow(a, b), nil }

func (PowerStrategy) Name() string { return "power" }

// ModuloStrategy implements the floored remainder. It is not registered
// by default.
type ModuloStrategy struct{}

func (ModuloStrategy) Compute(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &DivisionByZeroError{Message: "Cannot perform modulo with zero"}
	}
	return floorMod(a, b), nil
}

func (ModuloStrategy) Name() string { return "modulo" }
