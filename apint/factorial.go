package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
)

// factorialTable holds n! for every n whose factorial fits a uint64.
var factorialTable = [...]uint64{
	1,                    // 0!
	1,                    // 1!
	2,                    // 2!
	6,                    // 3!
	24,                   // 4!
	120,                  // 5!
	720,                  // 6!
	5040,                 // 7!
	40320,                // 8!
	362880,               // 9!
	3628800,              // 10!
	39916800,             // 11!
	479001600,            // 12!
	6227020800,           // 13!
	87178291200,          // 14!
	1307674368000,        // 15!
	20922789888000,       // 16!
	355687428096000,      // 17!
	6402373705728000,     // 18!
	121645100408832000,   // 19!
	2432902008176640000,  // 20!
}

// Factorial sets z to n!. Small n comes straight from a lookup table,
// medium n multiplies the table top iteratively, and large n uses
// binary-split range products so the sub-quadratic multiplication kernels
// engage on balanced halves.
func (z *Int) Factorial(n uint64) error {
	if err := z.checkDest("factorial"); err != nil {
		return err
	}
	if n < uint64(len(factorialTable)) {
		return z.SetUint64(factorialTable[n])
	}
	if n > uint64(DigitMax) {
		return &apperrors.InvalidArgumentError{Operation: "factorial", Message: "operand exceeds a single limb"}
	}
	if n < uint64(FactorialBinarySplitCutoff) {
		if err := z.SetUint64(factorialTable[len(factorialTable)-1]); err != nil {
			return err
		}
		for i := uint64(len(factorialTable)); i <= n; i++ {
			if err := z.MulDigit(z, Digit(i)); err != nil {
				return err
			}
		}
		return nil
	}
	t, err := acquireScratch(int(n) / DigitBits)
	if err != nil {
		return err
	}
	defer releaseScratch(t)
	if err := rangeProduct(t, 2, n); err != nil {
		return err
	}
	return z.Swap(t)
}

// rangeProduct sets z to the product of the integers in [lo, hi]. The range
// splits at its midpoint so both halves produce operands of similar size.
func rangeProduct(z *Int, lo, hi uint64) error {
	if hi-lo < 8 {
		if err := z.SetUint64(lo); err != nil {
			return err
		}
		for i := lo + 1; i <= hi; i++ {
			if err := z.MulDigit(z, Digit(i)); err != nil {
				return err
			}
		}
		return nil
	}
	mid := lo + (hi-lo)/2
	right, err := acquireScratch(int(hi-mid) + 1)
	if err != nil {
		return err
	}
	defer releaseScratch(right)
	if err := rangeProduct(z, lo, mid); err != nil {
		return err
	}
	if err := rangeProduct(right, mid+1, hi); err != nil {
		return err
	}
	return z.Mul(z, right)
}
