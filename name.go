package tetraquery

import "regexp"

var (
	idPattern    = regexp.MustCompile(`#(\w+)`)
	classPattern = regexp.MustCompile(`\.(\w+)`)
	tokenPattern = regexp.MustCompile(`^(?:#\w+|\.\w+)+$`)
)

// Name is the id and classes encoded in a label.
type Name struct {
	ID      string   // The first #id of the label, or empty.
	Classes []string // Every .class of the label, in order, duplicates kept.
}

// ParseName extracts the id and classes from a label. The id is the first
// "#" followed by word characters; classes are every "." followed by word
// characters. A label without either yields an empty Name.
func ParseName(label string) Name {
	name := Name{}

	if m := idPattern.FindStringSubmatch(label); m != nil {
		name.ID = m[1]
	}

	for _, m := range classPattern.FindAllStringSubmatch(label, -1) {
		name.Classes = append(name.Classes, m[1])
	}

	return name
}

// ValidToken reports whether token is a compound selector made only of
// #id and .class parts, such as "#hero" or ".red.box".
func ValidToken(token string) bool {
	return tokenPattern.MatchString(token)
}

// IsEmpty reports whether the Name has neither an id nor classes.
func (n Name) IsEmpty() bool {
	return n.ID == "" && len(n.Classes) == 0
}
