package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// nameFields are tried in order to label a record in table output.
var nameFields = []string{"entity.name", "entity.host", "userName", "displayName", "name"}

// guidFields are tried in order to identify a record in table output.
var guidFields = []string{"metadata.guid", "id", "guid"}

func encode(out io.Writer, format string, data interface{}) (bool, error) {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(data)
	default:
		return false, nil
	}
}

// writeRecords prints raw collection records.
func writeRecords(out io.Writer, format string, records []json.RawMessage) error {
	if format == constants.FormatYAML {
		// yaml.v3 would print RawMessage as a byte list.
		decoded := make([]interface{}, 0, len(records))

		for _, record := range records {
			var value interface{}

			if err := json.Unmarshal(record, &value); err != nil {
				return fmt.Errorf("decoding record: %w", err)
			}

			decoded = append(decoded, value)
		}

		_, err := encode(out, format, decoded)

		return err
	}

	if format == constants.FormatJSON {
		if records == nil {
			records = []json.RawMessage{}
		}

		_, err := encode(out, format, records)

		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("GUID", "Name")

	for _, record := range records {
		_ = table.Append(firstString(record, guidFields), firstString(record, nameFields))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(out, "%d record(s)\n", len(records))

	return err
}

// writeResult prints the outcome of a lifecycle command.
func writeResult(out io.Writer, format string, result *capi.Result) error {
	if ok, err := encode(out, format, result); ok {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	_ = table.Append("Operation", result.ID)
	_ = table.Append("Command", string(result.Command))
	_ = table.Append("Target", result.Target)
	_ = table.Append("Outcome", string(result.Outcome))

	if result.Expected != "" {
		_ = table.Append("Expected", result.Expected)
		_ = table.Append("Observed", result.Observed)
		_ = table.Append("Checks", strconv.Itoa(result.Attempts))
	}

	_ = table.Append("Elapsed", result.Elapsed.String())

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func firstString(record json.RawMessage, paths []string) string {
	for _, path := range paths {
		if value := gjson.GetBytes(record, path); value.Exists() && value.String() != "" {
			return value.String()
		}
	}

	return ""
}
