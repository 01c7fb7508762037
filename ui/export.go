package ui

import (
	"fmt"
	"regexp"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exportFilename names a grid download after the disease
func exportFilename(disease, ext string) string {
	name := unsafeFilename.ReplaceAllString(disease, "_")
	if name == "" {
		name = "selection"
	}
	return fmt.Sprintf("%s_alleles.%s", name, ext)
}
