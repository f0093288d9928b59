package account

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a profile value that the profile service may send as a string,
// number or boolean. Null and missing values decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f':
		v, err := strconv.ParseBool(string(b))
		if err != nil {
			return err
		}
		if v {
			*t = "true"
		} else {
			// false is treated as absent
			*t = ""
		}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

// Profile is the personal record returned by the profile service.
type Profile struct {
	ID          Text `json:"ID"`
	FirstName   Text `json:"First_Name"`
	LastName    Text `json:"Last_Name"`
	Email       Text `json:"email"`
	Phone       Text `json:"phone"`
	DateOfBirth Text `json:"DateOfBirth"`
}
