// Package version models the Java language levels the parser understands.
//
// Versions form a strict total order. Preview levels sort directly after the
// release they preview against, so 12 < 12-preview < 13.
package version

import (
	"errors"
	"fmt"
	"strings"
)

type Version int

const (
	J1_3 Version = iota
	J1_4
	J1_5
	J1_6
	J1_7
	J1_8
	J9
	J10
	J11
	J12
	J12Preview
	J13
	J13Preview
	J14
	J15
	J16
	J17
	J21

	versionCount int = iota
)

const (
	Earliest = J1_3
	Latest   = J21
)

var ErrUnknownVersion = errors.New("unknown java version")

var versionNames = [versionCount]string{
	J1_3:       "1.3",
	J1_4:       "1.4",
	J1_5:       "1.5",
	J1_6:       "1.6",
	J1_7:       "1.7",
	J1_8:       "1.8",
	J9:         "9",
	J10:        "10",
	J11:        "11",
	J12:        "12",
	J12Preview: "12-preview",
	J13:        "13",
	J13Preview: "13-preview",
	J14:        "14",
	J15:        "15",
	J16:        "16",
	J17:        "17",
	J21:        "21",
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v]
}

func (v Version) Valid() bool {
	return v >= 0 && int(v) < versionCount
}

func (v Version) IsPreview() bool {
	return v == J12Preview || v == J13Preview
}

// Release returns the release a preview level belongs to, or v itself.
func (v Version) Release() Version {
	switch v {
	case J12Preview:
		return J12
	case J13Preview:
		return J13
	}
	return v
}

func (v Version) Before(other Version) bool { return v < other }

func (v Version) AtLeast(other Version) bool { return v >= other }

// MarshalText and UnmarshalText let versions appear in config files by name.
func (v Version) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, int(v))
	}
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse accepts "1.5", "5", "J1_5", "12-preview", "java12-preview" and
// similar spellings.
func Parse(name string) (Version, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "java")
	s = strings.TrimPrefix(s, "j")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "_", ".")
	s = strings.ReplaceAll(s, ".preview", "-preview")
	switch s {
	case "5", "6", "7", "8":
		s = "1." + s
	case "3", "4":
		s = "1." + s
	}
	for i, n := range versionNames {
		if n == s {
			return Version(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
}

func MustParse(name string) Version {
	v, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Versions returns every known version in ascending order.
func Versions() []Version {
	all := make([]Version, versionCount)
	for i := range all {
		all[i] = Version(i)
	}
	return all
}

// Range returns the versions between a and b, both included. When a is
// after b the range runs backwards, from a down to b.
func Range(a, b Version) []Version {
	if a <= b {
		out := make([]Version, 0, int(b-a)+1)
		for v := a; v <= b; v++ {
			out = append(out, v)
		}
		return out
	}
	out := make([]Version, 0, int(a-b)+1)
	for v := a; v >= b; v-- {
		out = append(out, v)
	}
	return out
}

// Complement returns every version except v, in ascending order.
func Complement(v Version) []Version {
	out := make([]Version, 0, versionCount-1)
	for _, other := range Versions() {
		if other != v {
			out = append(out, other)
		}
	}
	return out
}

// Since returns v and every later version.
func Since(v Version) []Version {
	return Range(v, Latest)
}

// Until returns every version strictly before v.
func Until(v Version) []Version {
	if v <= Earliest {
		return nil
	}
	return Range(Earliest, v-1)
}
