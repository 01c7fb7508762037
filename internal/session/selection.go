// Package session owns per-user selection state and the filtered views derived from it.
package session

import (
	"strbrowser/domain/core"
	"strbrowser/internal/dataset"
)

// Bin-width slider bounds and initial value
const (
	MinBinWidth     = 1
	MaxBinWidth     = 50
	DefaultBinWidth = 1
)

// Selection is the active disease and histogram bin width
type Selection struct {
	Disease  string `json:"disease"`
	BinWidth int    `json:"bin_width"`
}

// State holds one session's selection. Values only change through the setters, which the
// input layers call with what the user picked.
type State struct {
	catalog   *dataset.Catalog
	selection Selection
}

// NewState starts on the first disease with the default bin width
func NewState(catalog *dataset.Catalog) *State {
	return &State{
		catalog: catalog,
		selection: Selection{
			Disease:  catalog.DefaultDisease(),
			BinWidth: DefaultBinWidth,
		},
	}
}

// Selection returns the current selection
func (s *State) Selection() Selection {
	return s.selection
}

// SelectDisease changes the disease; it must be one of the enumerated values
func (s *State) SelectDisease(disease string) error {
	if err := ValidateDisease(s.catalog, disease); err != nil {
		return err
	}
	s.selection.Disease = disease
	return nil
}

// SetBinWidth changes the bin width; it must lie in [MinBinWidth, MaxBinWidth]
func (s *State) SetBinWidth(width int) error {
	if err := ValidateBinWidth(width); err != nil {
		return err
	}
	s.selection.BinWidth = width
	return nil
}

// ValidateDisease checks membership in the catalog's disease set
func ValidateDisease(catalog *dataset.Catalog, disease string) error {
	if !catalog.HasDisease(disease) {
		return core.NewUnknownDiseaseError(disease)
	}
	return nil
}

// ValidateBinWidth checks the slider range
func ValidateBinWidth(width int) error {
	if width < MinBinWidth || width > MaxBinWidth {
		return core.NewBinWidthError(width, MinBinWidth, MaxBinWidth)
	}
	return nil
}
