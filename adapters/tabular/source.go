package tabular

import (
	"context"
	"fmt"

	"strbrowser/domain/tandem"
)

// FileSource loads the allele and motif tables from two files.
type FileSource struct {
	AllelePath string
	MotifPath  string
}

// NewFileSource creates a file-backed table source
func NewFileSource(allelePath, motifPath string) *FileSource {
	return &FileSource{AllelePath: allelePath, MotifPath: motifPath}
}

// LoadAlleles reads and decodes the allele-count table
func (s *FileSource) LoadAlleles(ctx context.Context) (tandem.AlleleTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := NewDataReader(s.AllelePath).ReadData()
	if err != nil {
		return nil, err
	}
	return DecodeAlleles(raw)
}

// LoadMotifs reads and decodes the motif table
func (s *FileSource) LoadMotifs(ctx context.Context) (tandem.MotifTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := NewDataReader(s.MotifPath).ReadData()
	if err != nil {
		return nil, err
	}
	return DecodeMotifs(raw)
}

// Describe names both files
func (s *FileSource) Describe() string {
	return fmt.Sprintf("files(%s, %s)", s.AllelePath, s.MotifPath)
}
