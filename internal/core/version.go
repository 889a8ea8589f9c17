package core

import (
	"regexp"
	"strconv"
	"strings"

	"uvm/internal/types"
)

var versionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+)(?:\.(\d+)(?:([abfp])(\d+))?)?)?$`)

// Version is an editor version such as 2019.3.1f1. Trailing fields may be
// absent, in which case the version acts as a prefix when matching.
type Version struct {
	major, minor, patch, build     int
	hasMinor, hasPatch, hasRelease bool
	release                        types.ReleaseType
}

// ParseVersion parses major[.minor[.patch[<a|b|f|p><build>]]].
func ParseVersion(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	match := versionPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Version{}, malformedVersion(text)
	}
	var v Version
	var err error
	if v.major, err = strconv.Atoi(match[1]); err != nil {
		return Version{}, malformedVersion(text)
	}
	if match[2] != "" {
		v.hasMinor = true
		if v.minor, err = strconv.Atoi(match[2]); err != nil {
			return Version{}, malformedVersion(text)
		}
	}
	if match[3] != "" {
		v.hasPatch = true
		if v.patch, err = strconv.Atoi(match[3]); err != nil {
			return Version{}, malformedVersion(text)
		}
	}
	if match[4] != "" {
		v.hasRelease = true
		v.release = types.ReleaseType(match[4][0])
		if v.build, err = strconv.Atoi(match[5]); err != nil {
			return Version{}, malformedVersion(text)
		}
	}
	return v, nil
}

// MustParseVersion is ParseVersion for constants; it panics on bad input.
func MustParseVersion(text string) Version {
	v, err := ParseVersion(text)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) Major() int { return v.major }

func (v Version) Minor() (int, bool) { return v.minor, v.hasMinor }

func (v Version) Patch() (int, bool) { return v.patch, v.hasPatch }

func (v Version) Release() (types.ReleaseType, int, bool) {
	return v.release, v.build, v.hasRelease
}

// IsZero reports whether v is the zero value rather than a parsed version.
func (v Version) IsZero() bool {
	return v == Version{}
}

// IsComplete reports whether major, minor and patch are all set. The
// release tag stays optional; the installer decides what an untagged
// patch version means.
func (v Version) IsComplete() bool {
	return v.hasMinor && v.hasPatch
}

func (v Version) String() string {
	var builder strings.Builder
	builder.WriteString(strconv.Itoa(v.major))
	if !v.hasMinor {
		return builder.String()
	}
	builder.WriteByte('.')
	builder.WriteString(strconv.Itoa(v.minor))
	if !v.hasPatch {
		return builder.String()
	}
	builder.WriteByte('.')
	builder.WriteString(strconv.Itoa(v.patch))
	if !v.hasRelease {
		return builder.String()
	}
	builder.WriteByte(byte(v.release))
	builder.WriteString(strconv.Itoa(v.build))
	return builder.String()
}

// Compare returns -1, 0 or 1. An absent field orders before any present
// one, so 2019.3.1 < 2019.3.1a1.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.major, other.major); c != 0 {
		return c
	}
	if c := compareField(v.hasMinor, v.minor, other.hasMinor, other.minor); c != 0 {
		return c
	}
	if c := compareField(v.hasPatch, v.patch, other.hasPatch, other.patch); c != 0 {
		return c
	}
	if c := compareField(v.hasRelease, v.release.Rank(), other.hasRelease, other.release.Rank()); c != 0 {
		return c
	}
	return compareInt(v.build, other.build)
}

func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// CompareVersions is Compare in function form, convenient for sorting.
func CompareVersions(a Version, b Version) int {
	return a.Compare(b)
}

// Matches reports whether candidate agrees with every field present in
// requested. Absent fields in requested are wildcards.
func Matches(requested Version, candidate Version) bool {
	if requested.major != candidate.major {
		return false
	}
	if requested.hasMinor && (!candidate.hasMinor || requested.minor != candidate.minor) {
		return false
	}
	if requested.hasPatch && (!candidate.hasPatch || requested.patch != candidate.patch) {
		return false
	}
	if requested.hasRelease {
		if !candidate.hasRelease || requested.release != candidate.release || requested.build != candidate.build {
			return false
		}
	}
	return true
}

// BestMatch returns the greatest candidate matching requested.
func BestMatch(requested Version, candidates []Version) (Version, bool) {
	idx := bestMatchIndex(requested, len(candidates), func(i int) Version {
		return candidates[i]
	})
	if idx < 0 {
		return Version{}, false
	}
	return candidates[idx], true
}

// bestMatchIndex is shared by BestMatch and the registry so that both pick
// the greatest match; among equal versions the earliest index wins.
func bestMatchIndex(requested Version, n int, at func(int) Version) int {
	best := -1
	for i := 0; i < n; i++ {
		candidate := at(i)
		if !Matches(requested, candidate) {
			continue
		}
		if best < 0 || candidate.Compare(at(best)) > 0 {
			best = i
		}
	}
	return best
}

func compareField(hasA bool, a int, hasB bool, b int) int {
	switch {
	case !hasA && !hasB:
		return 0
	case !hasA:
		return -1
	case !hasB:
		return 1
	default:
		return compareInt(a, b)
	}
}

func compareInt(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
