package pipeline

import (
	"fmt"
	"strings"
)

// Naming controls output file names: <Prefix><Index padded to Digits>.<Ext>.
type Naming struct {
	Prefix     string
	StartIndex int
	Digits     int
	Ext        string
}

// DefaultNaming returns four-digit PNG names numbered from 1.
func DefaultNaming() Naming {
	return Naming{
		StartIndex: DefaultStartIndex,
		Digits:     DefaultDigits,
		Ext:        DefaultExt,
	}
}

// Validate checks the naming parameters.
func (n Naming) Validate() error {
	if n.Digits < 1 || n.Digits > MaxDigits {
		return fmt.Errorf("%w: digits must be in [1, %d], got %d", ErrInvalidParameter, MaxDigits, n.Digits)
	}
	if n.Ext == "" {
		return fmt.Errorf("%w: extension must not be empty", ErrInvalidParameter)
	}
	if strings.ContainsAny(n.Ext, pathSeparators) {
		return fmt.Errorf("%w: extension %q contains a path separator", ErrInvalidParameter, n.Ext)
	}
	return nil
}

// Name returns the file name for output index.
func (n Naming) Name(index int) string {
	return fmt.Sprintf("%s%0*d.%s", n.Prefix, n.Digits, index, n.Ext)
}

// Frame is one planned output.
type Frame struct {
	Ordinal int     // 1-based position among the inbetweens
	T       float64 // Timestep in (0,1)
	Index   int     // Output numbering index
	Name    string  // Output file name
}

// Timestep returns i/(n+1), the position of inbetween i of n between the
// keyframes.
func Timestep(i, n int) float64 {
	return float64(i) / float64(n+1)
}

// Schedule plans n inbetween frames.
func Schedule(n int, naming Naming) ([]Frame, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: frame count must be at least 1, got %d", ErrInvalidParameter, n)
	}
	if err := naming.Validate(); err != nil {
		return nil, err
	}

	frames := make([]Frame, n)
	for i := 1; i <= n; i++ {
		index := naming.StartIndex + i - 1
		frames[i-1] = Frame{
			Ordinal: i,
			T:       Timestep(i, n),
			Index:   index,
			Name:    naming.Name(index),
		}
	}
	return frames, nil
}
