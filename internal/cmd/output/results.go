package output

import (
	"github.com/agentstation/pubcheck/pkg/reconcile"
)

// SummaryToTableData converts a run summary to table format, one row
// per (model, match) pair and one row per unpublished model.
func SummaryToTableData(summary reconcile.Summary) Data {
	headers := []string{"Model", "Identifier", "Published", "Artifact", "Version", "Registry Path"}

	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		if !result.Published {
			rows = append(rows, []string{
				result.Model.ID, result.Identifier, "no", "-", "-", "-",
			})
			continue
		}

		for _, artifact := range result.Matches {
			version, ok := artifact.Version()
			if !ok {
				version = "-"
			}
			rows = append(rows, []string{
				result.Model.ID,
				result.Identifier,
				"yes",
				artifact.SourceName,
				version,
				artifact.QualifiedName,
			})
		}
	}

	return Data{Headers: headers, Rows: rows}
}
