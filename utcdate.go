package velocypack

import (
	"time"

	"github.com/golang-module/carbon/v2"
)

// NewUTCDateValueFromTime returns a UTCDate value for t, truncated to
// millisecond precision the way the wire format stores it.
func NewUTCDateValueFromTime(t time.Time) Value {
	return NewUTCDateValue(carbon.CreateFromStdTime(t).TimestampMilli())
}

// UTCDateTime decodes a UTCDate Slice into a carbon.Carbon, the same
// calendar/timezone-aware type the rest of this ecosystem uses for
// timestamps.
func (s Slice) UTCDateTime() (carbon.Carbon, error) {
	millis, err := s.GetUTCDate()
	if err != nil {
		return carbon.Carbon{}, err
	}
	return carbon.CreateFromTimestampMilli(millis), nil
}
