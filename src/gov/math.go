package gov

import "math/bits"

// Checked arithmetic. Every accumulator and timestamp in the core is built
// from attacker-controlled input, so wrap-around is always an error, never
// silent.

func addU64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

func subU64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrArithmeticUnderflow
	}
	return diff, nil
}

func addU32(a, b uint32) (uint32, error) {
	sum := uint64(a) + uint64(b)
	if sum > 1<<32-1 {
		return 0, ErrArithmeticOverflow
	}
	return uint32(sum), nil
}

func addI64(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// mulDiv computes floor(a*num/den) through a 128-bit intermediate so the
// product cannot wrap. Errors when the quotient itself exceeds 64 bits.
func mulDiv(a, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrArithmeticOverflow
	}
	hi, lo := bits.Mul64(a, num)
	if hi >= den {
		return 0, ErrArithmeticOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}
