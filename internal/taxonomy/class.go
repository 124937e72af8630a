package taxonomy

import "strings"

// CategoryClass is the closed set of top-level skill classes. Source
// reliability weights are keyed by class, not by the finer-grained category
// string carried on detections.
type CategoryClass int

// Category classes.
const (
	ClassTechnical CategoryClass = iota
	ClassSoft
	ClassDomain
)

func (c CategoryClass) String() string {
	switch c {
	case ClassSoft:
		return "soft"
	case ClassDomain:
		return "domain"
	default:
		return "technical"
	}
}

// ClassOf maps a category string (e.g. "technical_programming_languages",
// "soft_leadership") to its class. This is the single place the category
// naming convention is interpreted; unknown categories default to technical.
func ClassOf(category string) CategoryClass {
	switch {
	case strings.HasPrefix(category, "soft"):
		return ClassSoft
	case strings.HasPrefix(category, "domain"):
		return ClassDomain
	default:
		return ClassTechnical
	}
}
