package calc

import "math"

// maxExponent is the largest exponent allowed for bases with magnitude
// above one.
const maxExponent = 1000

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns the difference of a and b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns the product of a and b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns the quotient of a and b.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &DivisionByZeroError{Message: "Cannot divide by zero"}
	}
	return a / b, nil
}

// Power returns a raised to the power of b.
func Power(a, b float64) (float64, error) {
	if math.Abs(a) > 1 && b > maxExponent {
		return 0, &InvalidExponentError{Message: "Exponent too large, result would overflow"}
	}
	result := math.Pow(a, b)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, &InvalidExponentError{Message: "Result is too large (overflow)"}
	}
	return result, nil
}

// Modulus returns the floored remainder of a divided by b. The result
// takes the sign of the divisor.
func Modulus(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &DivisionByZeroError{Message: "Cannot calculate modulus with zero divisor"}
	}
	return floorMod(a, b), nil
}

// SquareRoot returns the square root of a.
func SquareRoot(a float64) (float64, error) {
	if a < 0 {
		return 0, &NegativeRootError{Message: "Cannot calculate square root of negative number"}
	}
	return math.Sqrt(a), nil
}

// NthRoot returns the nth root of a. Odd roots of negative numbers are
// computed from the absolute value and negated.
func NthRoot(a, n float64) (float64, error) {
	if n == 0 {
		return 0, &DivisionByZeroError{Message: "Cannot calculate zeroth root (division by zero)"}
	}
	if a < 0 {
		if math.Mod(n, 2) == 0 {
			return 0, &NegativeRootError{Message: "Cannot calculate even root of negative number"}
		}
		return -math.Pow(-a, 1/n), nil
	}
	return math.Pow(a, 1/n), nil
}

// floorMod computes the remainder matching the divisor's sign.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
