package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)

	headers := []string{"Timer", "Aggregate", "Records", "Seconds", "Per Step", "Percent"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			row.Name,
			strconv.FormatBool(row.Aggregate),
			strconv.Itoa(row.Records),
			strconv.FormatFloat(row.Seconds, 'f', -1, 64),
			optionalFloat(row.PerStep),
			optionalFloat(row.Percent),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
