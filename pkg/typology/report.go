package typology

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/samber/lo"
)

var countHeader = []string{"ranking", "suffix", "prefix", "infix", "nonconcat_cv", "nonconcat_unattested"}

// WriteCounts writes one tab separated row per ranking followed by the summary statistics
func WriteCounts(w io.Writer, summary Summary) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(countHeader); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for _, tally := range summary.Tallies {
		record := append([]string{tally.Ranking}, lo.Map(ot.Typologies, func(typology ot.Typology, _ int) string {
			return strconv.Itoa(tally.Count(typology))
		})...)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	_, err := io.WriteString(w, SummaryText(summary))
	return err
}

// SummaryText renders the four summary statistics
func SummaryText(summary Summary) string {
	var builder strings.Builder
	line := func(numerator, denominator int, value float64, text string) {
		fmt.Fprintf(&builder, "%d/%d (%.1f%%) %s\n", numerator, denominator, 100*value, text)
	}

	builder.WriteString("\nSummary:\n\n")
	line(summary.AtLeastOneNonconcat, summary.Rankings(), summary.AtLeastOneNonconcatRatio(),
		"rankings have at least one non-concatenative output.")
	line(summary.MajorityNonconcat, summary.Rankings(), summary.MajorityNonconcatRatio(),
		"rankings have more than half non-concatenative outputs.")
	line(summary.AtLeastOneUnattested, summary.AtLeastOneNonconcat, summary.AtLeastOneUnattestedRatio(),
		"non-concat rankings have at least one unattested output.")
	line(summary.MajorityUnattested, summary.MajorityNonconcat, summary.MajorityUnattestedRatio(),
		"majority non-concat rankings have more than half unattested outputs.")
	return builder.String()
}

// WriteFull writes the ranking header and one line per input; verbose adds every tableau
func WriteFull(w io.Writer, result RankingResult, verbose bool) error {
	var builder strings.Builder
	separator := strings.Repeat("-", 34)

	fmt.Fprintf(&builder, "%s\n%s\n%s\n", separator, result.Ranking, separator)
	for _, outcome := range result.Outcomes {
		winners := strings.Join(lo.Map(outcome.Winners, func(winner ot.Sequence, _ int) string { return winner.String() }), ", ")
		fmt.Fprintf(&builder, "%v [%s] %v\n", outcome.Input, winners, outcome.Typology)
		if verbose && outcome.Tableau != nil {
			builder.WriteString(outcome.Tableau.String())
			builder.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
