package simulation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	FormatCsv  = "csv"
	FormatYaml = "yaml"
	FormatJson = "json"
)

func SupportedFormats() []string {
	return []string{FormatCsv, FormatYaml, FormatJson}
}

// Encode serializes a record in the given format.
// csv only contains the trajectory, one row per tick.
func Encode(record Record, format string) ([]byte, error) {
	switch format {
	case FormatCsv:
		return encodeCsv(record.Trajectory)
	case FormatYaml:
		return yaml.Marshal(record)
	case FormatJson:
		return json.MarshalIndent(record, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func encodeCsv(trajectory Trajectory) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"tick", "target", "actual", "output", "error"}); err != nil {
		return nil, err
	}
	for _, sample := range trajectory {
		row := []string{
			strconv.Itoa(sample.Tick),
			formatFloat(sample.Target),
			formatFloat(sample.Actual),
			formatFloat(sample.Output),
			formatFloat(sample.Error),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
