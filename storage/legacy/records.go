// Package legacy reads the JSON records of the browser version of the application
// (`Id` keys, string course ids, ISO dates) into canonical records.
package legacy

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// localLayouts are the zone-less layouts of the date inputs, read in the import location.
var localLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02"}

var errNotANumber = errors.New("not a number")

// flexInt decodes a JSON number or numeric string; null and "" decode as 0.
type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	s, isNull := unquote(data)
	if isNull {
		*i = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n != math.Trunc(n) {
		return errors.Wrapf(errNotANumber, "invalid id %s", data)
	}
	*i = flexInt(n)
	return nil
}

// flexFloat decodes a JSON number or numeric string; null and "" decode as unset.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s, isNull := unquote(data)
	if isNull {
		*f = flexFloat{}
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(errNotANumber, "invalid number %s", data)
	}
	*f = flexFloat{Value: n, Set: true}
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// flexTime keeps the raw date text; it is parsed once the import location is known.
type flexTime string

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s, _ := unquote(data)
	*t = flexTime(s)
	return nil
}

// parse reads RFC 3339 dates as is and zone-less dates in loc. Blank dates are nil.
func (t flexTime) parse(loc *time.Location) (*time.Time, error) {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			ts = ts.UTC()
			return &ts, nil
		}
	}
	return nil, errors.Errorf("invalid date %q", s)
}

// unquote strips the quotes of JSON strings. isNull is true for null & blank values.
func unquote(data []byte) (s string, isNull bool) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", true
	}
	if len(data) >= 2 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			s = strings.TrimSpace(str)
			return s, s == ""
		}
	}
	return string(data), false
}

type (
	ScheduleSlot struct {
		Day       string `json:"day"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Location  string `json:"location"`
	}

	Course struct {
		ID         flexInt        `json:"Id"`
		Name       string         `json:"name"`
		Instructor string         `json:"instructor"`
		Color      string         `json:"color"`
		Credits    flexFloat      `json:"credits"`
		Semester   string         `json:"semester"`
		Schedule   []ScheduleSlot `json:"schedule"`
		CreatedAt  flexTime       `json:"createdAt"`
	}

	Assignment struct {
		ID          flexInt   `json:"Id"`
		CourseID    flexInt   `json:"courseId"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		DueDate     flexTime  `json:"dueDate"`
		Priority    string    `json:"priority"`
		Type        string    `json:"type"`
		Weight      flexFloat `json:"weight"`
		Grade       flexFloat `json:"grade"`
		Completed   bool      `json:"completed"`
		CreatedAt   flexTime  `json:"createdAt"`
	}
)
