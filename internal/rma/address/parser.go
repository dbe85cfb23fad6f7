// Package address splits a free-text organization details blob into postal
// fields. The desk stores addresses as "street, city, state zip, country" by
// convention only, so this is best effort, not authoritative.
package address

import "strings"

// Fields is the structured form of a details blob. All fields empty when the
// blob could not be confidently parsed.
type Fields struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Parse splits details on the literal ", " separator.
//
// Fewer than 3 segments means the blob is under-specified and every field
// stays empty; this is not an error. With 3 or more segments the first is the
// street, the second the city, and the third is split on single spaces into
// state and zip (tokens past the second are dropped). A fourth segment is the
// country; segments past the fourth are ignored.
func Parse(details string) Fields {
	parts := strings.Split(details, ", ")
	if len(parts) < 3 {
		return Fields{}
	}

	f := Fields{
		Street: parts[0],
		City:   parts[1],
	}

	stateZip := strings.Split(parts[2], " ")
	f.State = stateZip[0]
	if len(stateZip) > 1 {
		f.Zip = stateZip[1]
	}

	if len(parts) > 3 {
		f.Country = parts[3]
	}

	return f
}
