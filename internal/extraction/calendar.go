package extraction

import "time"

// nepalTime is Nepal Standard Time (UTC+05:45), which has no daylight saving.
var nepalTime = time.FixedZone("NPT", 5*60*60+45*60)

// IsTradingDay reports whether NEPSE runs a session on d's calendar day in
// Nepal. The exchange trades Sunday through Thursday.
func IsTradingDay(d time.Time) bool {
	wd := d.In(nepalTime).Weekday()
	return wd != time.Friday && wd != time.Saturday
}

// TradingDate returns the most recent trading day on or before now, as
// midnight in Nepal. On a closed day the floor sheet still shows that session.
func TradingDate(now time.Time) time.Time {
	d := truncateToDate(now.In(nepalTime))
	for !IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
