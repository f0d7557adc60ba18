package version

import "strings"

// Set is an immutable set of versions, one bit per version.
type Set uint64

func NewSet(vs ...Version) Set {
	var s Set
	for _, v := range vs {
		if v.Valid() {
			s |= 1 << uint(v)
		}
	}
	return s
}

func All() Set {
	return NewSet(Versions()...)
}

func RangeSet(a, b Version) Set {
	return NewSet(Range(a, b)...)
}

func SinceSet(v Version) Set {
	return RangeSet(v, Latest)
}

func (s Set) Contains(v Version) bool {
	return v.Valid() && s&(1<<uint(v)) != 0
}

func (s Set) Union(other Set) Set {
	return s | other
}

func (s Set) Intersect(other Set) Set {
	return s & other
}

func (s Set) Without(vs ...Version) Set {
	return s &^ NewSet(vs...)
}

// Complement returns every known version outside s.
func (s Set) Complement() Set {
	return All() &^ s
}

func (s Set) Empty() bool {
	return s == 0
}

func (s Set) Len() int {
	n := 0
	for _, v := range Versions() {
		if s.Contains(v) {
			n++
		}
	}
	return n
}

// Versions lists the members in ascending order.
func (s Set) Versions() []Version {
	var out []Version
	for _, v := range Versions() {
		if s.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// Earliest returns the smallest member, or false when s is empty.
func (s Set) Earliest() (Version, bool) {
	for _, v := range Versions() {
		if s.Contains(v) {
			return v, true
		}
	}
	return 0, false
}

// String renders the set as a list of contiguous runs, e.g. "1.5..21" or
// "12-preview, 13-preview..21".
func (s Set) String() string {
	var parts []string
	vs := s.Versions()
	for i := 0; i < len(vs); {
		j := i
		for j+1 < len(vs) && vs[j+1] == vs[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, vs[i].String())
		} else {
			parts = append(parts, vs[i].String()+".."+vs[j].String())
		}
		i = j + 1
	}
	if len(parts) == 0 {
		return "{}"
	}
	return strings.Join(parts, ", ")
}
