package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"strbrowser/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error", ConfigInvalid("PORT is required"), CodeConfigInvalid},
		{"wrapped app error", fmt.Errorf("outer: %w", NotFound("disease")), CodeNotFound},
		{"empty selection", core.NewEmptySelectionError("HD"), CodeEmptySelection},
		{"degenerate bins", core.ErrDegenerateBins, CodeDegenerateBins},
		{"unknown disease", core.NewUnknownDiseaseError("XX"), CodeNotFound},
		{"bin width", core.NewBinWidthError(99, 1, 50), CodeValidationError},
		{"missing column", core.NewMissingColumnError("alleles", "count"), CodeLoadFailed},
		{"plain", stderrors.New("boom"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(core.NewEmptySelectionError("HD"), "value boxes")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeEmptySelection, GetCode(err))
	assert.ErrorIs(t, err, core.ErrEmptySelection)
	assert.Contains(t, err.Error(), "value boxes")
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	assert.Nil(t, Wrapf(nil, "loading %s", "alleles.tsv"))

	err := Wrapf(core.ErrEmptyTable, "loading %s", "alleles.tsv")
	assert.Equal(t, "loading alleles.tsv: table has no data rows", err.Error())
	assert.Equal(t, CodeLoadFailed, GetCode(err))
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInternalError, stderrors.New("boom"))
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.ErrorContains(t, err, "boom")
}
