// Package projection names the levels of detail a portal read can return.
package projection

import (
	"fmt"
	"strings"
)

type Projection string

const (
	ID       Projection = "ID"
	Summary  Projection = "SUMMARY"
	Detailed Projection = "DETAILED"
	Meta     Projection = "META"
)

// Parse returns SUMMARY for an empty string.
func Parse(s string) (Projection, error) {
	if s == "" {
		return Summary, nil
	}
	switch p := Projection(strings.ToUpper(s)); p {
	case ID, Summary, Detailed, Meta:
		return p, nil
	}
	return "", fmt.Errorf("invalid projection: %s", s)
}

func (p Projection) String() string { return string(p) }
