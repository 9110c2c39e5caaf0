package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*f = flexString(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*f = flexString(data)
	}
	return nil
}

// flexAmount accepts a JSON number or a string that may carry currency symbols
// and thousands separators.
type flexAmount struct {
	value decimal.Decimal
	ok    bool
}

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = flexAmount{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := parseMoney(s); err == nil {
			*f = flexAmount{value: v, ok: true}
		}
		return nil
	}
	if v, err := decimal.NewFromString(string(data)); err == nil {
		*f = flexAmount{value: v, ok: true}
	}
	return nil
}

// couponField accepts a single string, an array of strings, a single object
// with a code property or an array of such objects.
type couponField struct {
	codes []string
}

type couponObject struct {
	Code string `json:"code"`
}

func (c *couponField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	c.codes = nil
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			c.add(s)
		}
	case '{':
		var obj couponObject
		if err := json.Unmarshal(data, &obj); err == nil {
			c.add(obj.Code)
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for _, item := range items {
			var nested couponField
			if err := nested.UnmarshalJSON(item); err == nil {
				c.codes = append(c.codes, nested.codes...)
			}
		}
	}
	return nil
}

func (c *couponField) add(code string) {
	if code = strings.TrimSpace(code); code != "" {
		c.codes = append(c.codes, code)
	}
}

func (c couponField) first() string {
	if len(c.codes) == 0 {
		return ""
	}
	return c.codes[0]
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime accepts common timestamp strings or unix seconds/milliseconds.
type flexTime struct {
	t time.Time
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	f.t = time.Time{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				f.t = t.UTC()
				return nil
			}
		}
		return nil
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil && n > 0 {
		if n > 1_000_000_000_000 {
			f.t = time.UnixMilli(n).UTC()
		} else {
			f.t = time.Unix(n, 0).UTC()
		}
	}
	return nil
}

var errNoDigits = errors.New("no digits in amount")

// parseMoney strips everything but digits, separators and sign. When both
// separators are present the last one is the decimal point; a lone comma
// followed by one or two digits is a decimal comma.
func parseMoney(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	hasDigit := false
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
			b.WriteRune(r)
		case r == ',' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	if !hasDigit {
		return decimal.Zero, errNoDigits
	}
	s := b.String()

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		decimals := len(s) - lastComma - 1
		if strings.Count(s, ",") == 1 && decimals > 0 && decimals <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

func firstString(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

func firstAmount(values ...flexAmount) (decimal.Decimal, bool) {
	for _, v := range values {
		if v.ok {
			return v.value, true
		}
	}
	return decimal.Zero, false
}

func firstCoupon(values ...couponField) string {
	for _, v := range values {
		if code := v.first(); code != "" {
			return code
		}
	}
	return ""
}

func firstTime(values ...flexTime) time.Time {
	for _, v := range values {
		if !v.t.IsZero() {
			return v.t
		}
	}
	return time.Time{}
}
