// path: internal/bitboard/errors.go
package bitboard

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidLiteral    = errors.New("invalid binary literal")
	ErrNegativeValue     = errors.New("negative value")
	ErrUnsupportedShift  = errors.New("unsupported shift")
)
