package carbon

type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by NormalizeToKg and Equivalencies.
var (
	ErrInvalidUnit         = constError("invalid carbon unit")
	ErrNegativeValue       = constError("negative carbon value")
	ErrCalculationOverflow = constError("calculation overflow")
)
