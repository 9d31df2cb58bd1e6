package apint

// ─────────────────────────────────────────────────────────────────────────────
// Limb Configuration
// ─────────────────────────────────────────────────────────────────────────────
//
// Digits carry 28 significant bits inside a 64-bit word. The spare upper bits
// are what make the word-level arithmetic simple: the product of two digits
// plus a carry plus an accumulator always fits a single uint64, so no
// double-word type is needed anywhere in the kernel.

const (
	// DigitBits is the number of significant bits per limb.
	DigitBits = 28

	// Mask selects the significant bits of a limb. Every used limb of a
	// canonical Int satisfies d <= Mask.
	Mask Digit = (1 << DigitBits) - 1

	// DigitMax is the largest value a single limb can hold.
	DigitMax Digit = Mask

	// WordBits is the width of the Word accumulator used for multiplicative
	// intermediates.
	WordBits = 64
)

// ─────────────────────────────────────────────────────────────────────────────
// Comba Ceilings
// ─────────────────────────────────────────────────────────────────────────────

const (
	// WArray is the size of the on-stack column accumulator used by the
	// Comba kernels. Derived from the word width: with 28-bit digits a
	// column of up to 256 products (each < 2^56) sums without overflowing
	// the 64-bit accumulator, and a product of two MaxComba-digit numbers
	// spans fewer than WArray columns.
	WArray = 1 << (WordBits - 2*DigitBits + 1)

	// MaxComba bounds the smaller operand of a Comba multiplication so the
	// column sums cannot overflow. Comba squaring additionally requires
	// used < MaxComba/2 because inner products are doubled.
	MaxComba = 1 << (WordBits - 2*DigitBits)
)

// ─────────────────────────────────────────────────────────────────────────────
// Allocation Bounds
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MinDigitCount is the smallest capacity an initialized limb buffer may
	// have. Keeping a floor avoids pathological realloc churn for tiny
	// values.
	MinDigitCount = 4

	// DefaultDigitCount is the capacity given to an Int on its first
	// mutating use. 32 limbs cover 896 bits, which absorbs the vast
	// majority of intermediate values without a second growth.
	DefaultDigitCount = 32

	// DefaultMaxBitCount caps how large a single Int may grow. The limit
	// exists so a corrupted size computation surfaces as OutOfMemory
	// instead of an attempt to allocate the address space. The config
	// layer lowers it on small-memory hosts.
	DefaultMaxBitCount = 1 << 31
)

// ─────────────────────────────────────────────────────────────────────────────
// Algorithm Cutoffs
// ─────────────────────────────────────────────────────────────────────────────
//
// The cutoffs are package variables rather than constants so that the config
// layer (env overrides, calibration profiles, adaptive estimation) and tests
// can retune them. Each routine reads its cutoff once per call; the kernel
// itself never writes them.

var (
	// MulKaratsubaCutoff is the smaller-operand limb count at which general
	// multiplication switches from the quadratic kernels to Karatsuba.
	// 80 limbs (~2240 bits) is the empirical crossover for the 28-bit digit
	// configuration: below it the split/recombine overhead dominates.
	MulKaratsubaCutoff = 80

	// MulToomCutoff is the smaller-operand limb count at which general
	// multiplication switches from Karatsuba to 3-way Toom-Cook.
	MulToomCutoff = 350

	// SqrKaratsubaCutoff is the limb count at which squaring switches to the
	// Karatsuba squaring kernel. Squaring halves the inner-product work, so
	// its crossover sits higher than the multiplication one.
	SqrKaratsubaCutoff = 120

	// SqrToomCutoff is the limb count at which squaring switches to the
	// Toom-Cook squaring kernel.
	SqrToomCutoff = 400

	// FactorialBinarySplitCutoff is the n at which Factorial moves from the
	// iterative digit-multiply loop to binary-split range products. The
	// split pays off once the partial products are large enough for the
	// sub-quadratic multiplication kernels to engage.
	FactorialBinarySplitCutoff = 1000

	// MaxIterationsRootN bounds the Newton iteration inside RootN. The
	// iteration converges quadratically from above, so the bound is
	// generous; hitting it indicates a degenerate input and surfaces as
	// MaxIterationsReached rather than a hang.
	MaxIterationsRootN = 500

	// MaxBitCount is the live allocation cap checked by grow. Adjusted by
	// the config layer from the host's physical memory.
	MaxBitCount = DefaultMaxBitCount
)
