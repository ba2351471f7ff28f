// Package naming builds photo file names from the user-configurable pattern.
//
// Substitution is plain literal replacement: each token is replaced once, at
// its first occurrence, in a fixed order. Replaced text is not re-scanned for
// earlier tokens but later tokens may match inside it.
//
// The km token puts the "12+007" marker in file names. Like every other token
// it is matched as plain text, so the first literal "km" anywhere in a pattern
// is rewritten too; a pattern that needs the letters kept must avoid them.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"highway_inspector/models"
)

const (
	TokenLocation    = "km"
	TokenHighway     = "rodovia"
	TokenDirection   = "sentido"
	TokenDate        = "data"
	TokenTime        = "hora"
	TokenSubActivity = "ocorre"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Tokens are the values substituted into a pattern.
type Tokens struct {
	Highway     string
	Direction   models.Direction
	Km          int
	Meters      int
	SubActivity string
	Time        time.Time
}

// TokensFor collects the naming tokens of a capture taken at t.
func TokensFor(req models.CaptureRequest, t time.Time) Tokens {
	return Tokens{
		Highway:     req.Highway,
		Direction:   req.Direction,
		Km:          req.Km,
		Meters:      req.Meters,
		SubActivity: req.SubActivity,
		Time:        t,
	}
}

// KmMarker formats a kilometer position as "<km>+<meters>" with meters
// zero-padded to three digits.
func KmMarker(km, meters int) string {
	return fmt.Sprintf("%d+%03d", km, meters)
}

// Build substitutes tk into pattern. An empty pattern falls back to
// "<highway>_<direction>_<date>_<time>_<subActivity>.jpg".
func Build(pattern string, tk Tokens) string {
	date := tk.Time.Format("20060102")
	clock := tk.Time.Format("150405")

	if strings.TrimSpace(pattern) == "" {
		return fmt.Sprintf("%s_%s_%s_%s_%s.jpg", tk.Highway, tk.Direction, date, clock, tk.SubActivity)
	}

	name := pattern
	name = strings.Replace(name, TokenLocation, KmMarker(tk.Km, tk.Meters), 1)
	name = strings.Replace(name, TokenHighway, strings.ReplaceAll(tk.Highway, "-", ""), 1)
	name = strings.Replace(name, TokenDirection, string(tk.Direction), 1)
	name = strings.Replace(name, TokenDate, date, 1)
	name = strings.Replace(name, TokenTime, clock, 1)
	name = strings.Replace(name, TokenSubActivity, nonAlphanumeric.ReplaceAllString(tk.SubActivity, ""), 1)
	return name
}
