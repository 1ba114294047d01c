package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docxscrub/docxscrub"
	"github.com/docxscrub/docxscrub/internal/logging"
	"github.com/spf13/cobra"
)

// defaultCharset is the built-in set of invisible characters, used when
// no charset file is given on the command line.
//
//go:embed charset.json
var defaultCharset []byte

var (
	outputPath  string
	charsetPath string
	workers     int
	force       bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "docxscrub <input.docx>",
	Short: "Strip invisible Unicode characters from DOCX files",
	Long: `docxscrub removes a configurable set of invisible Unicode characters
(zero-width spaces, directional marks, soft hyphens, ...) from the text of
a DOCX document. Formatting, structure, media, and metadata are preserved;
only run text inside the body, headers, footers, footnotes, endnotes, and
comments is touched. The input file is never modified.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: <input>_cleaned.docx)")
	rootCmd.Flags().StringVarP(&charsetPath, "charset", "c", "", "charset JSON file (default: built-in set)")
	rootCmd.Flags().IntVar(&workers, "workers", 1, "number of parts rewritten in parallel")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the output file if it exists")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(verbose)

	input := args[0]
	set, err := loadCharset(charsetPath)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(input)
	}

	summary, err := docxscrub.Process(input, out, set,
		docxscrub.WithWorkers(workers),
		docxscrub.WithOverwrite(force),
		docxscrub.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), summary, set, out)
	return nil
}

func loadCharset(path string) (*docxscrub.Charset, error) {
	if path == "" {
		return docxscrub.ParseCharset(defaultCharset)
	}
	return docxscrub.LoadCharset(path)
}

// defaultOutputPath places "<stem>_cleaned<ext>" next to the input.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), stem+"_cleaned"+ext)
}

// printSummary prints per-character removal statistics sorted by count,
// most removed first.
func printSummary(w io.Writer, s *docxscrub.Summary, set *docxscrub.Charset, out string) {
	fmt.Fprintln(w, "Character Removal Statistics:")
	fmt.Fprintln(w, "============================")

	type row struct {
		r rune
		n int
	}
	rows := make([]row, 0, len(s.Removed))
	for r, n := range s.Removed {
		if n > 0 {
			rows = append(rows, row{r, n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].r < rows[j].r
	})
	for _, row := range rows {
		name := set.Name(row.r)
		if name == "" {
			name = "UNKNOWN"
		}
		fmt.Fprintf(w, "%s (U+%04X): %d\n", name, row.r, row.n)
	}
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	fmt.Fprintf(w, "\nTotal characters removed: %d\n", s.TotalRemoved())
	fmt.Fprintf(w, "Saved as: %s\n", out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
