package mapping

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Spreadsheet serial of 1970-01-01.
const excelEpochSerial = 25569

const msPerDay = 86_400_000

func parseIdentity(raw any) (any, error) {
	return raw, nil
}

func parseString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return nil, fmt.Errorf("%w: expected text, got %T", domain.ErrMalformedValue, raw)
	}
}

func parseNumber(raw any) (any, error) {
	f, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// toFloat accepts numeric values and numeric strings.
func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrMalformedValue, v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrMalformedValue, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", domain.ErrMalformedValue, raw)
	}
}

func parseExcelDate(raw any, loc *time.Location) (any, error) {
	serial, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return nil, fmt.Errorf("%w: date serial is not finite", domain.ErrMalformedValue)
	}
	return ExcelSerialToTime(serial, loc), nil
}

// ExcelSerialToTime converts a spreadsheet date serial to an instant whose
// wall clock in loc equals the serial's calendar date and time of day.
func ExcelSerialToTime(serial float64, loc *time.Location) time.Time {
	ms := int64(math.Round((serial - excelEpochSerial) * msPerDay))
	u := time.UnixMilli(ms).UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), loc)
}

// TimeToExcelSerial is the inverse of ExcelSerialToTime.
func TimeToExcelSerial(t time.Time) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return float64(wall.UnixMilli())/msPerDay + excelEpochSerial
}

func parseISODate(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an ISO-8601 instant", domain.ErrMalformedValue, v)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: expected ISO-8601 text, got %T", domain.ErrMalformedValue, raw)
	}
}

func parseList(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return SplitList(v), nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list item %T is not text", domain.ErrMalformedValue, item)
			}
			out = append(out, s)
		}
		return out, nil
	case float64:
		// a single numeric hall number
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, nil
	default:
		return nil, fmt.Errorf("%w: expected delimited text, got %T", domain.ErrMalformedValue, raw)
	}
}

// SplitList splits a comma-delimited string and trims every item.
// Empty items are dropped.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
