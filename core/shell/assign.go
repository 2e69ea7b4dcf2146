package shell

import (
	"strings"
)

// Assignment reports whether line has the exact shape NAME=VALUE, meaning an
// = appears before any space. Lines with a space before the first = (for
// example "ls --opt=1") are not assignments. The name must be non-empty.
func Assignment(line string) (name, value string, ok bool) {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return "", "", false
	}
	if sp := strings.IndexByte(line, ' '); sp >= 0 && sp < eq {
		return "", "", false
	}
	return line[:eq], line[eq+1:], true
}
