package ports

import (
	"context"

	"strbrowser/domain/tandem"
)

// TableSource loads the two startup tables. Implementations are read once at startup;
// the catalog never calls them again.
type TableSource interface {
	LoadAlleles(ctx context.Context) (tandem.AlleleTable, error)
	LoadMotifs(ctx context.Context) (tandem.MotifTable, error)

	// Describe names the source for logs, e.g. a file path or a DSN without credentials.
	Describe() string
}
