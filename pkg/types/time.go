package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MillisecondTimestamp marshals as a unix millisecond integer, which is
// what every candle feed this widget gets embedded next to speaks.
type MillisecondTimestamp time.Time

func NewMillisecondTimestampFromInt(i int64) MillisecondTimestamp {
	return MillisecondTimestamp(time.Unix(0, i*int64(time.Millisecond)))
}

func (t MillisecondTimestamp) Time() time.Time {
	return time.Time(t)
}

func (t MillisecondTimestamp) String() string {
	return time.Time(t).String()
}

func (t MillisecondTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Time(t).UnixNano()/int64(time.Millisecond), 10)), nil
}

// UnmarshalJSON accepts the forms feeds actually emit: a millisecond
// integer, the same integer wrapped in a string, or decimal unix
// seconds.
func (t *MillisecondTimestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = MillisecondTimestamp{}
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "can not parse timestamp %q", s)
	}

	if strings.Contains(s, ".") {
		// fractional values are unix seconds
		*t = NewMillisecondTimestampFromInt(int64(v * 1000))
		return nil
	}
	*t = NewMillisecondTimestampFromInt(int64(v))
	return nil
}
