package monitor

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/ratewatch/ratewatch/pkg/types"
)

const millisPerDay = 86_400_000

// Message templates. The stale and fetch-error texts are the exact
// diagnostic sentences operators grep for, so they must not drift.
const (
	staleMessageFormat = "The currency rates data has a stale timestamp of %s. Please check the currency rates file generator logs."
	freshMessageFormat = "The currency rates data has a timestamp of %s, found not to be stale."
	fetchErrorFormat   = "Error reading currency rates file from S3: %s"
)

// asOfFormats are the timestamp layouts accepted for the dataAsOf field.
var asOfFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02",
}

// ParseFileRecord decodes the fetched body into a FileRecord. The body
// must be UTF-8 JSON carrying a dataAsOf field.
func ParseFileRecord(body []byte) (types.FileRecord, error) {
	var rec types.FileRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return types.FileRecord{}, fmt.Errorf("parsing currency rates file: %w", err)
	}
	if rec.DataAsOf == "" {
		return types.FileRecord{}, fmt.Errorf("currency rates file has no dataAsOf field")
	}
	return rec, nil
}

// ParseAsOf parses the record's dataAsOf value into a time.
func ParseAsOf(rec types.FileRecord) (time.Time, error) {
	for _, layout := range asOfFormats {
		if t, err := time.Parse(layout, rec.DataAsOf); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable dataAsOf timestamp %q", rec.DataAsOf)
}

// DaysDifference returns the number of whole days between a and b,
// computed from the millisecond difference and rounded half away from
// zero. Antisymmetric: DaysDifference(a, b) == -DaysDifference(b, a).
func DaysDifference(a, b time.Time) int {
	return int(math.Round(float64(a.Sub(b).Milliseconds()) / millisPerDay))
}

// Evaluate decides staleness for a file declaring asOf, observed at now,
// against a threshold in days. A file exactly threshold days old is not
// stale; only a strictly greater day difference is.
func Evaluate(rec types.FileRecord, asOf, now time.Time, thresholdDays int) *types.StalenessResult {
	if DaysDifference(now, asOf) > thresholdDays {
		return &types.StalenessResult{
			Stale:   true,
			Message: fmt.Sprintf(staleMessageFormat, rec.DataAsOf),
		}
	}
	return &types.StalenessResult{
		Stale:   false,
		Message: fmt.Sprintf(freshMessageFormat, rec.DataAsOf),
	}
}

// FetchErrorResult builds the alert result for a failed fetch, embedding
// the underlying error text.
func FetchErrorResult(err error) *types.StalenessResult {
	return &types.StalenessResult{
		Stale:   true,
		Message: fmt.Sprintf(fetchErrorFormat, err.Error()),
	}
}
