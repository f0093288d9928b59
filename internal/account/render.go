package account

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const notAvailable = "Not available"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatDate renders a date of birth as "January 2, 2006" in UTC.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("January 2, 2006")
		}
	}
	return "Invalid date"
}

// Field is one labelled line of the profile section.
type Field struct {
	Label string
	Value string
}

func orNotAvailable(t Text) string {
	if t == "" {
		return notAvailable
	}
	return string(t)
}

// Fields returns the profile lines in display order.
func (p *Profile) Fields() []Field {
	return []Field{
		{"ID", orNotAvailable(p.ID)},
		{"First Name", orNotAvailable(p.FirstName)},
		{"Last Name", orNotAvailable(p.LastName)},
		{"Email", orNotAvailable(p.Email)},
		{"Phone", orNotAvailable(p.Phone)},
		{"Date of Birth", FormatDate(string(p.DateOfBirth))},
	}
}

// RoleHeader is the heading shown above the profile.
func RoleHeader(r Role) string {
	if r == RoleUnknown {
		return "User Role: No role assigned"
	}
	return "User Role: " + r.String()
}

// Render writes the account page as plain text.
func Render(w io.Writer, role Role, s State) error {
	var b strings.Builder
	b.WriteString(RoleHeader(role))
	b.WriteString("\n")
	if d, ok := role.Dashboard(); ok {
		fmt.Fprintf(&b, "[%s] %s\n", d.Label, d.Path)
	}
	b.WriteString("\nProfile Information\n")

	switch s.Phase {
	case PhaseLoading:
		b.WriteString("Loading...\n")
	case PhaseFailed:
		b.WriteString(s.Message + "\n")
	case PhaseNoData:
		b.WriteString(noProfileMessage + "\n")
	case PhaseReady:
		for _, f := range s.Profile.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
