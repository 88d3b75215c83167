package domain

import "regexp"

// appIDPattern matches either a bare numeric id or an id embedded in a
// store URL path segment ("app/570").
var appIDPattern = regexp.MustCompile(`(?:app/|^)(\d+)`)

// ParseAppID extracts a Steam app id from user input. The input may be a
// bare id ("570") or a store URL ("https://store.steampowered.com/app/570/").
func ParseAppID(input string) (string, error) {
	m := appIDPattern.FindStringSubmatch(input)
	if m == nil {
		return "", ErrInvalidAppID
	}
	return m[1], nil
}
