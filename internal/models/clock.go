package models

import "time"

// BeijingNow — серверное время в поясе UTC+8, в нём же храним все метки.
func BeijingNow() time.Time {
	return time.Now().UTC().Add(8 * time.Hour)
}
