package rating

import "time"

// ProjectDeliveryDate returns the arrival time for a service with the given
// transit days. Only weekdays are counted; holidays are not modelled.
// The result is at cutoffHour local time of the landing day.
func ProjectDeliveryDate(now time.Time, days, cutoffHour int) time.Time {
	d := now
	for added := 0; added < days; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), cutoffHour, 0, 0, 0, d.Location())
}
