package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"strbrowser/internal"
	"strbrowser/internal/config"
	"strbrowser/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alleleTSV = "disease\tgene\ttype\tlocus_structure\tInheritance\tpathogenic_min\tpathogenic_max\tsample\tsex\tcount\tlength\tallele\tsample_allele\n" +
	"HD\tHTT\tCAG\t(CAG)n\tAD\t36\tNA\tHG01\tfemale\t17\t51\t1\tHG01_1\n" +
	"SCA1\tATXN1\tCAG\t(CAG)n\tAD\t39\t91\tHG02\tmale\t30\t90\t1\tHG02_1\n"

const motifTSV = "disease\tsample_allele\tpos\tmotif\tanno\n" +
	"HD\tHG01_1\t0\tCAG\tCAG\n"

func fileConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	alleles := filepath.Join(dir, "alleles.tsv")
	motifs := filepath.Join(dir, "motifs.tsv")
	require.NoError(t, os.WriteFile(alleles, []byte(alleleTSV), 0o644))
	require.NoError(t, os.WriteFile(motifs, []byte(motifTSV), 0o644))

	cfg := config.Default()
	cfg.Data.AlleleTable = alleles
	cfg.Data.MotifTable = motifs
	cfg.Session.TTL = time.Minute
	return cfg
}

func TestContainerFileSource(t *testing.T) {
	c, err := New(fileConfig(t), internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)

	sessions, err := c.InitSessions(context.Background())
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.Equal(t, []string{"HD", "SCA1"}, c.Catalog.Diseases())
	assert.Same(t, c.Catalog, sessions.Catalog())
	assert.Nil(t, c.DB)
	assert.Contains(t, c.Source.Describe(), "alleles.tsv")
}

func TestContainerMissingFile(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Data.AlleleTable = filepath.Join(t.TempDir(), "missing.tsv")

	c, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = c.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeLoadFailed, errors.GetCode(err))
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}
