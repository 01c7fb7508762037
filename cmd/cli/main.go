package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"strbrowser/adapters/postgres"
	"strbrowser/adapters/tabular"
	"strbrowser/internal"
	"strbrowser/internal/config"
	"strbrowser/internal/container"
	"strbrowser/internal/dataset"
	"strbrowser/internal/session"
	"strbrowser/internal/views"
	"strbrowser/ui/terminal"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every sub-command
type options struct {
	alleles     string
	motifs      string
	source      string
	databaseURL string
	profileDir  string
	asJSON      bool

	cfg     *config.Config
	logger  *internal.Logger
	stopper interface{ Stop() }
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#21918C"))

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "strbrowser-cli",
		Short:         "Browse tandem-repeat genotypes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.stopper != nil {
				opts.stopper.Stop()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.alleles, "alleles", "", "Allele-count table (.tsv, .csv or .xlsx); defaults to ALLELE_TABLE")
	flags.StringVar(&opts.motifs, "motifs", "", "Motif table (.tsv, .csv or .xlsx); defaults to MOTIF_TABLE")
	flags.StringVar(&opts.source, "source", "", "Table source: file or postgres; defaults to DATA_SOURCE")
	flags.StringVar(&opts.databaseURL, "database-url", "", "Postgres connection URL; defaults to DATABASE_URL")
	flags.StringVar(&opts.profileDir, "profile", "", "Write a CPU profile into this directory")
	flags.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(
		newDiseasesCmd(opts),
		newSummaryCmd(opts),
		newHistogramCmd(opts),
		newHeatmapCmd(opts),
		newTableCmd(opts),
		newExportCmd(opts),
		newTUICmd(opts),
		newImportCmd(opts),
	)
	return rootCmd
}

// setup loads configuration, applies flag overrides and starts profiling when asked
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.alleles != "" {
		cfg.Data.AlleleTable = o.alleles
	}
	if o.motifs != "" {
		cfg.Data.MotifTable = o.motifs
	}
	if o.source != "" {
		cfg.Data.Source = o.source
	}
	if o.databaseURL != "" {
		cfg.Database.URL = o.databaseURL
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))

	if o.profileDir != "" {
		o.stopper = profile.Start(profile.CPUProfile, profile.ProfilePath(o.profileDir), profile.NoShutdownHook)
	}
	return nil
}

// catalog loads both tables through the configured source
func (o *options) catalog(ctx context.Context) (*dataset.Catalog, func(), error) {
	c, err := container.New(o.cfg, o.logger)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := c.LoadCatalog(ctx)
	if err != nil {
		c.Shutdown(ctx)
		return nil, nil, err
	}
	return catalog, func() { c.Shutdown(ctx) }, nil
}

// view loads the catalog and applies the disease and bin width flags to a fresh session
func (o *options) view(ctx context.Context, disease string, binWidth int) (session.View, error) {
	catalog, done, err := o.catalog(ctx)
	if err != nil {
		return session.View{}, err
	}
	defer done()

	in := session.Input{BinWidth: &binWidth}
	if disease != "" {
		in.Disease = &disease
	}
	return session.New(catalog).Update(in)
}

func (o *options) printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDiseasesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diseases",
		Short: "List the diseases in the allele table, default first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, done, err := opts.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return opts.printJSON(out, map[string]interface{}{"diseases": catalog.Diseases(), "catalog": catalog.Stats()})
			}
			for _, d := range catalog.Diseases() {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	var disease string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the value boxes for a disease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.view(cmd.Context(), disease, session.DefaultBinWidth)
			if err != nil {
				return err
			}
			s, err := views.Summarize(v.Selection.Disease, v.Alleles)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return opts.printJSON(out, s)
			}
			t := table.New().Headers("Field", "Value").Rows(
				[]string{"Gene", s.Boxes.Gene},
				[]string{"Type", s.Boxes.Type},
				[]string{"Locus Structure", s.Boxes.LocusStructure},
				[]string{"Inheritance", s.Boxes.Inheritance},
				[]string{"Pathogenic Min", s.Boxes.PathogenicMin.String()},
				[]string{"Pathogenic Max", s.Boxes.PathogenicMax.String()},
				[]string{"Alleles", fmt.Sprint(s.Counts.Alleles)},
				[]string{"Samples", fmt.Sprint(s.Counts.Samples)},
				[]string{"Mean count", s.Counts.Mean.String()},
				[]string{"Median count", s.Counts.Median.String()},
				[]string{"Count range", s.Counts.Min.String() + " - " + s.Counts.Max.String()},
			)
			fmt.Fprintln(out, headerStyle.Render(s.Disease))
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&disease, "disease", "", "Disease to summarise (default: first in the table)")
	return cmd
}

func newHistogramCmd(opts *options) *cobra.Command {
	var disease string
	var binWidth int

	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Bin the repeat counts of a disease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.view(cmd.Context(), disease, binWidth)
			if err != nil {
				return err
			}
			h, err := views.BuildHistogram(v.Selection.Disease, v.Alleles, v.Selection.BinWidth)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return opts.printJSON(out, h)
			}
			t := table.New().Headers("Lower", "Upper", h.YTitle, "")
			for _, b := range h.Bins {
				bar := ""
				if h.Peak > 0 {
					bar = strings.Repeat("█", b.Count*30/h.Peak)
				}
				t.Row(views.Measure{Value: b.Lower, Valid: true}.String(), views.Measure{Value: b.Upper, Valid: true}.String(), fmt.Sprint(b.Count), bar)
			}
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s, bin width %d (%d bins)", v.Selection.Disease, h.BinWidth, len(h.Bins))))
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&disease, "disease", "", "Disease to plot (default: first in the table)")
	cmd.Flags().IntVar(&binWidth, "bin-width", session.DefaultBinWidth, fmt.Sprintf("Histogram bin width (%d-%d)", session.MinBinWidth, session.MaxBinWidth))
	return cmd
}

func newHeatmapCmd(opts *options) *cobra.Command {
	var disease string

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Print the motif-by-position grid of a disease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.view(cmd.Context(), disease, session.DefaultBinWidth)
			if err != nil {
				return err
			}
			h := views.BuildHeatmap(v.Motifs)

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return opts.printJSON(out, h)
			}
			for _, e := range h.Legend {
				fmt.Fprintf(out, "%s %d=%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("█"), e.Code, e.Motif)
			}
			for _, row := range h.Rows {
				cells := make([]string, len(row.Codes))
				for i, code := range row.Codes {
					if code == views.NoMotif {
						cells[i] = "."
					} else {
						cells[i] = fmt.Sprint(code)
					}
				}
				fmt.Fprintf(out, "%s\t%s\n", row.SampleAllele, strings.Join(cells, " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&disease, "disease", "", "Disease to plot (default: first in the table)")
	return cmd
}

// gridFlags are the filter and sort flags shared by table and export
type gridFlags struct {
	disease string
	filters map[string]string
	sort    string
}

func (g *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.disease, "disease", "", "Disease to list (default: first in the table)")
	cmd.Flags().StringToStringVar(&g.filters, "filter", nil, "Column filters, e.g. --filter sex=female,count=20-40")
	cmd.Flags().StringVar(&g.sort, "sort", "", "Sort column, prefix with - for descending")
}

func (g *gridFlags) grid(ctx context.Context, opts *options) (views.Grid, string, error) {
	v, err := opts.view(ctx, g.disease, session.DefaultBinWidth)
	if err != nil {
		return views.Grid{}, "", err
	}
	grid, err := views.BuildGrid(v.Alleles, views.GridQuery{Filters: g.filters, Sort: g.sort})
	return grid, v.Selection.Disease, err
}

func newTableCmd(opts *options) *cobra.Command {
	g := &gridFlags{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the allele rows of a disease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, disease, err := g.grid(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return opts.printJSON(out, grid)
			}
			t := table.New().Headers(grid.Columns...)
			for _, r := range grid.Rows {
				t.Row(r.Cells()...)
			}
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s: %d of %d alleles", disease, grid.Shown, grid.Total)))
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	g.register(cmd)
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	g := &gridFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the allele rows of a disease to .xlsx or .tsv",
		Long: `Write the (optionally filtered and sorted) allele grid of a disease to a file.
The format follows the output extension: .xlsx for a workbook, anything else for TSV.

Example: strbrowser-cli export --disease HD --filter count=30- --out hd_long.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, disease, err := g.grid(cmd.Context(), opts)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if strings.HasSuffix(strings.ToLower(output), ".xlsx") {
				err = views.WriteGridXLSX(f, grid)
			} else {
				err = views.WriteGridTSV(f, grid)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d %s alleles to %s\n", grid.Shown, disease, output)
			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "alleles.tsv", "Output file")
	return cmd
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, done, err := opts.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			return terminal.Run(catalog)
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the allele and motif files into the Postgres tables",
		Long: `Read the allele and motif files (--alleles, --motifs) and replace the contents of
the Postgres tables named by DB_ALLELE_TABLE and DB_MOTIF_TABLE, creating
them when missing.

Example: strbrowser-cli import --database-url postgres://localhost/strbrowser?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if opts.cfg.Database.URL == "" {
				return fmt.Errorf("import needs --database-url or DATABASE_URL")
			}

			src := tabular.NewFileSource(opts.cfg.Data.AlleleTable, opts.cfg.Data.MotifTable)
			catalog, err := dataset.Load(ctx, src, opts.logger)
			if err != nil {
				return err
			}

			db, err := postgres.Connect(opts.cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			alleleTable, motifTable := opts.cfg.Database.AlleleTable, opts.cfg.Database.MotifTable
			if err := postgres.CreateTables(ctx, db, alleleTable, motifTable); err != nil {
				return err
			}
			if err := postgres.ImportTables(ctx, db, alleleTable, motifTable, catalog.Alleles(), catalog.Motifs()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d allele rows into %s and %d motif rows into %s\n",
				len(catalog.Alleles()), alleleTable, len(catalog.Motifs()), motifTable)
			return nil
		},
	}
}
