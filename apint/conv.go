package apint

import (
	cryptorand "crypto/rand"
	"encoding/binary"

	apperrors "github.com/agbru/apcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Bitfield Extraction
// ─────────────────────────────────────────────────────────────────────────────

// BitfieldExtract returns the count-bit window of |a| starting at bit
// offset, packed into a uint64. count must be in [1, 64]; bits beyond the
// top of the magnitude read as zero.
func (a *Int) BitfieldExtract(offset, count int) (uint64, error) {
	if count < 1 || count > WordBits {
		return 0, &apperrors.InvalidArgumentError{Operation: "bitfield_extract", Message: "count out of range"}
	}
	if offset < 0 {
		return 0, &apperrors.InvalidArgumentError{Operation: "bitfield_extract", Message: "negative offset"}
	}
	if err := checkOperands("bitfield_extract", a); err != nil {
		return 0, err
	}
	// With 28-bit limbs a 64-bit window spans at most four consecutive
	// limbs; gather chunk by chunk from the low end.
	var out uint64
	for taken := 0; taken < count; {
		limb := (offset + taken) / DigitBits
		bit := uint((offset + taken) % DigitBits)
		chunk := DigitBits - int(bit)
		if chunk > count-taken {
			chunk = count - taken
		}
		d := a.digitAt(limb)
		out |= uint64((d>>bit)&((1<<uint(chunk))-1)) << uint(taken)
		taken += chunk
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Narrow Integer Conversion
// ─────────────────────────────────────────────────────────────────────────────

// GetUint64 returns the low 64 bits of |a|.
func (a *Int) GetUint64() uint64 {
	var v uint64
	for i := a.used - 1; i >= 0; i-- {
		v = v<<DigitBits | uint64(a.dig[i])
	}
	return v
}

// GetInt64 narrows a to an int64. The top bit of the collected 64-bit
// magnitude is always masked off before the sign is applied, so the result
// stays within the signed range at the cost of clipping values with bit 63
// set.
func (a *Int) GetInt64() int64 {
	u := a.GetUint64() &^ (1 << 63)
	if a.sign == Negative {
		return -int64(u)
	}
	return int64(u)
}

// GetFloat64 returns a coarse float64 approximation of a.
func (a *Int) GetFloat64() float64 {
	const fac = float64(1 << DigitBits)
	d := 0.0
	for i := a.used - 1; i >= 0; i-- {
		d = d*fac + float64(a.dig[i])
	}
	if a.sign == Negative {
		d = -d
	}
	return d
}

// SetUint64 sets z to v.
func (z *Int) SetUint64(v uint64) error {
	if err := z.checkDest("set_uint64"); err != nil {
		return err
	}
	if err := z.grow((64 + DigitBits - 1) / DigitBits); err != nil {
		return err
	}
	oldUsed := z.used
	i := 0
	for ; v != 0; v >>= DigitBits {
		z.dig[i] = Digit(v) & Mask
		i++
	}
	z.used = i
	z.sign = NonNegative
	z.flags &^= flagSpecial
	z.zeroUnused(oldUsed)
	return nil
}

// SetInt64 sets z to v.
func (z *Int) SetInt64(v int64) error {
	neg := v < 0
	// Two's-complement negation via uint64 also covers MinInt64.
	u := uint64(v)
	if neg {
		u = -u
	}
	if err := z.SetUint64(u); err != nil {
		return err
	}
	if neg {
		z.sign = Negative
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Power-of-Two Constructor
// ─────────────────────────────────────────────────────────────────────────────

// PowerOfTwo sets z to 2^k by placing a single bit.
func (z *Int) PowerOfTwo(k int) error {
	if k < 0 {
		return &apperrors.InvalidArgumentError{Operation: "power_of_two", Message: "negative exponent"}
	}
	if err := z.checkDest("power_of_two"); err != nil {
		return err
	}
	limb := k / DigitBits
	if err := z.grow(limb + 1); err != nil {
		return err
	}
	oldUsed := z.used
	z.used = limb + 1
	for i := 0; i < limb; i++ {
		z.dig[i] = 0
	}
	z.dig[limb] = 1 << uint(k%DigitBits)
	z.sign = NonNegative
	z.flags &^= flagSpecial
	z.zeroUnused(oldUsed)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Random Generation
// ─────────────────────────────────────────────────────────────────────────────

// Source yields uniformly random limbs. Implementations return a Digit
// whose significant bits are uniformly distributed; bits above DigitBits
// are discarded by the kernel.
type Source interface {
	RandomDigit() (Digit, error)
}

// Rand fills z with the given number of random bits from src: whole limbs
// are drawn and the top limb is masked down to the requested count.
func (z *Int) Rand(bitCount int, src Source) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "rand", Message: "negative bit count"}
	}
	if err := z.checkDest("rand"); err != nil {
		return err
	}
	if bitCount == 0 {
		return z.Zero()
	}
	limbs := (bitCount + DigitBits - 1) / DigitBits
	if err := z.grow(limbs); err != nil {
		return err
	}
	oldUsed := z.used
	for i := 0; i < limbs; i++ {
		d, err := src.RandomDigit()
		if err != nil {
			z.used = 0
			z.sign = NonNegative
			z.zeroUnused(oldUsed)
			return apperrors.WrapError(err, "rand: drawing digit %d", i)
		}
		z.dig[i] = d & Mask
	}
	if top := uint(bitCount % DigitBits); top != 0 {
		z.dig[limbs-1] &= (1 << top) - 1
	}
	z.used = limbs
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// CryptoSource draws digits from crypto/rand.
type CryptoSource struct{}

// RandomDigit returns one uniformly random limb from the operating system's
// entropy source.
func (CryptoSource) RandomDigit() (Digit, error) {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 0, err
	}
	return Digit(binary.LittleEndian.Uint64(buf[:])) & Mask, nil
}
