package caseta

import "time"

// DateFormat is the textual layout of record creation and modification stamps.
const DateFormat = "02/01/2006"

// Clock abstracts time retrieval so record stamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
