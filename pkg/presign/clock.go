package presign

import (
	"fmt"
	"time"
)

// Clock supplies the signing instant. It is read exactly once per signature.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = systemClock{}

// FixedClock always returns t. Intended for tests and for verification,
// where the instant comes from the URL instead of the wall clock.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// TimestampPair holds the two renderings of a single signing instant.
type TimestampPair struct {
	Full  string // YYYYMMDDTHHMMSSZ, used for X-Amz-Date
	Short string // YYYYMMDD, used in the credential scope
}

// NewTimestampPair formats t in UTC. Both values come from the same instant so
// the credential scope always agrees with X-Amz-Date.
func NewTimestampPair(t time.Time) (TimestampPair, error) {
	if t.IsZero() {
		return TimestampPair{}, fmt.Errorf("%w: zero time", ErrClockFormatting)
	}

	t = t.UTC()
	if y := t.Year(); y < 1 || y > 9999 {
		return TimestampPair{}, fmt.Errorf("%w: year %d not representable", ErrClockFormatting, y)
	}

	p := TimestampPair{
		Full:  t.Format(TimeFormat),
		Short: t.Format(ShortTimeFormat),
	}
	if len(p.Full) != len(TimeFormat) || len(p.Short) != len(ShortTimeFormat) {
		return TimestampPair{}, fmt.Errorf("%w: unexpected layout %q", ErrClockFormatting, p.Full)
	}
	return p, nil
}

// Time parses the full timestamp back into an instant.
func (p TimestampPair) Time() (time.Time, error) {
	return time.Parse(TimeFormat, p.Full)
}

// CredentialScope returns date/region/s3/aws4_request.
func CredentialScope(shortDate, region string) string {
	return shortDate + "/" + region + "/" + ServiceName + "/" + TerminationString
}
