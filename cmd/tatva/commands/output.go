package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/Pranshu115/tatva/resource"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(toAny(header)...)
	for _, row := range rows {
		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

// renderKeyValues prints a two-column property table sorted by key.
func renderKeyValues(w io.Writer, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprint(values[k])})
	}
	return renderTable(w, []string{"Property", "Value"}, rows)
}

// printPage renders one page of a paginated listing followed by its
// position.
func printPage[T any](w io.Writer, output string, st resource.PageState[T], header []string, row func(T) []string) error {
	if output == outputJSON {
		return printJSON(w, resource.NewEnvelope(st.Items, st.TotalPages, st.TotalItems))
	}
	rows := make([][]string, 0, len(st.Items))
	for _, item := range st.Items {
		rows = append(rows, row(item))
	}
	if err := renderTable(w, header, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d (%d items)\n", st.Page, max(st.TotalPages, 1), st.TotalItems)
	return err
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
