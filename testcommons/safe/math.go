package safe

import (
	"errors"
)

// ErrIntOverflow is returned when a checked arithmetic operation would
// overflow the int range.
var ErrIntOverflow = errors.New("integer overflow")

// MulInt multiplies two non-negative ints with overflow detection.
// Returns ErrIntOverflow if the product does not fit in an int.
//
// Example:
//
//	count, err := safe.MulInt(count, len(argList))
//	if err != nil {
//	    return fmt.Errorf("combination count: %w", err)
//	}
func MulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	product := a * b
	if product/b != a {
		return 0, ErrIntOverflow
	}

	return product, nil
}

// ProductInt multiplies a series of non-negative ints with overflow
// detection. An empty series yields 1 (the empty product).
func ProductInt(values ...int) (int, error) {
	product := 1

	for _, v := range values {
		next, err := MulInt(product, v)
		if err != nil {
			return 0, err
		}

		product = next
	}

	return product, nil
}
