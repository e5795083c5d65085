package pipeline

// Output naming defaults.
const (
	DefaultStartIndex = 1
	DefaultDigits     = 4
	DefaultExt        = "png"

	// MaxDigits bounds the zero-padding width; wider fields cannot hold
	// more significant digits of an int64 index.
	MaxDigits = 18
)

// pathSeparators may not appear in an output extension.
const pathSeparators = `/\`

// Reorder buffer sizing.
const (
	defaultPendingCapacity = 4 // Initial capacity for out-of-order entries
)
