package extraction

import "time"

const (
	fileDateLayout = "Mon-Jan-02-2006" // e.g. Sun-Oct-18-2026
	fileSuffix     = "-floor-data.csv"
)

// OutputFileName returns the CSV file name for a run started at t.
func OutputFileName(t time.Time) string {
	return t.Format(fileDateLayout) + fileSuffix
}
