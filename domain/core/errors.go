package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrUnknownDisease = fmt.Errorf("%w: disease", ErrNotFound)

	// Selection errors
	ErrInvalidBinWidth = errors.New("bin width out of range")
	ErrEmptySelection  = errors.New("no allele records match the selected disease")
	ErrDegenerateBins  = errors.New("bin width yields no histogram bins")

	// Load errors
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedCell = errors.New("malformed cell")
	ErrEmptyTable    = errors.New("table has no data rows")
)

// Error constructors with context
func NewUnknownDiseaseError(disease string) error {
	return fmt.Errorf("%w %q", ErrUnknownDisease, disease)
}

func NewBinWidthError(width, min, max int) error {
	return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBinWidth, width, min, max)
}

func NewEmptySelectionError(disease string) error {
	return fmt.Errorf("%w %q", ErrEmptySelection, disease)
}

func NewMissingColumnError(table, column string) error {
	return fmt.Errorf("%w: %s.%s", ErrMissingColumn, table, column)
}

func NewMalformedCellError(table string, row int, column, value string) error {
	return fmt.Errorf("%w: %s row %d column %s = %q", ErrMalformedCell, table, row, column, value)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsSelectionError(err error) bool {
	return errors.Is(err, ErrUnknownDisease) ||
		errors.Is(err, ErrInvalidBinWidth)
}

func IsRenderError(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrDegenerateBins)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMalformedCell) ||
		errors.Is(err, ErrEmptyTable)
}
