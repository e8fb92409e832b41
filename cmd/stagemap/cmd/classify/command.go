// Package classify provides the command that shows how event names are
// categorized.
package classify

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/output"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// Result is the category assigned to one name.
type Result struct {
	Name     string            `json:"name" yaml:"name"`
	Category timeline.Category `json:"category" yaml:"category"`
	Color    string            `json:"color" yaml:"color"`
}

// Results is the classify listing.
type Results []Result

// Table implements output.Tabular.
func (rs Results) Table() output.Data {
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = []string{r.Name, r.Category.String(), r.Color}
	}
	return output.Data{Headers: []string{"Name", "Category", "Color"}, Rows: rows}
}

// NewCommand creates the classify command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "classify NAME...",
		Short: "Show the category and marker color for event names",
		Long: `Classify runs event names through the same rules used on load.

Matching is case-insensitive and the first rule wins: a name mentioning
a premiere is a premiere, one mentioning a funeral is a funeral, one
mentioning a performance is a performance, and anything else is other.`,
		Example: `  stagemap classify "World Premiere of Nixon in China" "Recital"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.Write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), Classify(args))
		},
	}
}

// Classify categorizes every name.
func Classify(names []string) Results {
	out := make(Results, len(names))
	for i, n := range names {
		c := timeline.Classify(n)
		out[i] = Result{Name: n, Category: c, Color: c.Color()}
	}
	return out
}
