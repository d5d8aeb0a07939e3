package presale

type PresaleError uint32

const (
	// Presale is not active
	ErrPresaleInactive PresaleError = iota + 0x1770

	// Purchase exceeds remaining allocation
	ErrExceedsAllocation

	// Tokens are still locked
	ErrTokensStillLocked

	// Tokens have already been claimed
	ErrAlreadyClaimed

	// Calculation error occurred
	ErrCalculationError
)
