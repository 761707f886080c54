package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/envelope-zero/envelopes/internal/config"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type SummaryOptions struct {
	Format   string // "text" | "json"
	Language string // BCP 47 tag for number formatting in text output
}

func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the budget summary",
		Long: `Load the envelopes of the owner from the remote service once and print
the totals and the breakdown per category.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(opts.Format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().StringVar(&opts.Language, "lang", "en", "language used to format amounts in text output")

	return cmd
}

func runSummary(ctx context.Context, opts *SummaryOptions, w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Load(ctx); err != nil {
		return err
	}

	tag, err := language.Parse(opts.Language)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", opts.Language, err)
	}

	return writeSummary(w, opts.Format, tag, svc.Store().Summary())
}

// maxLocalizedAmount is the smallest amount printed without localization.
var maxLocalizedAmount = decimal.New(1, 13)

// writeSummary prints s as indented JSON or as a table.
func writeSummary(w io.Writer, format string, tag language.Tag, s store.Summary) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(s)
	}

	p := message.NewPrinter(tag)
	amount := func(d decimal.Decimal) string {
		d = d.Round(2)

		// Larger amounts do not fit the 15 significant digits of a float64
		if d.Abs().GreaterThanOrEqual(maxLocalizedAmount) {
			return d.StringFixed(2)
		}
		return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
	}

	fmt.Fprintf(w, "%-20s %9s %14s %14s\n", "Category", "Envelopes", "Allocated", "Spent")
	for _, c := range s.Categories {
		fmt.Fprintf(w, "%-20s %9s %14s %14s\n", c.Category, p.Sprint(c.Count), amount(c.Allocated), amount(c.Spent))
	}

	var count int
	for _, c := range s.Categories {
		count += c.Count
	}

	fmt.Fprintf(w, "%-20s %9s %14s %14s\n", "Total", p.Sprint(count), amount(s.TotalAllocated), amount(s.TotalSpent))
	fmt.Fprintf(w, "%-20s %9s %14s %14s\n", "Remaining", "", "", amount(s.Remaining))

	return nil
}
