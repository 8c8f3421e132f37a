// Package naming validates uploaded photo filenames against the event
// convention and derives the canonical storage name for them.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// Prefix is the required filename prefix for event photos.
const Prefix = "BBD"

var namePattern = regexp.MustCompile(`(?i)^` + Prefix + `_(\d+)`)

// InvalidNameError reports a filename that does not follow the
// BBD_<number> convention.
type InvalidNameError struct {
	Filename string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid photo name %q: must start with %s_<number>", e.Filename, Prefix)
}

// Name is the parsed identity of a photo file.
type Name struct {
	// Number is the photo number parsed from the filename.
	Number int
	// Canonical is the normalized filename, e.g. BBD_0007.jpg.
	// Numbers longer than four digits keep all their digits.
	Canonical string
}

// Parse checks filename against the convention and returns its canonical
// form. The prefix match is case-insensitive and anything after the digits
// (such as the extension) is ignored.
func Parse(filename string) (Name, error) {
	m := namePattern.FindStringSubmatch(filename)
	if m == nil {
		return Name{}, &InvalidNameError{Filename: filename}
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return Name{}, &InvalidNameError{Filename: filename}
	}
	return Name{
		Number:    number,
		Canonical: fmt.Sprintf("%s_%04d.jpg", Prefix, number),
	}, nil
}

// Key returns the object storage key for a photo number on a given
// event day, e.g. "07/BBD_0012.jpg".
func Key(day string, number int) string {
	return fmt.Sprintf("%s/%s_%04d.jpg", day, Prefix, number)
}
