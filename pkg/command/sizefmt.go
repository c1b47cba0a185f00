package command

import (
	"code.cloudfoundry.org/bytefmt"
)

// humanSize renders n bytes with bytefmt.ByteSize and then inserts the
// space bytefmt omits between the number and its unit ("0B" -> "0 B"), to
// match spec.md §4.9/§8's literal "0 B"-style attr output.
func humanSize(n uint64) string {
	s := bytefmt.ByteSize(n)

	i := 0
	for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 || i == len(s) {
		return s
	}

	return s[:i] + " " + s[i:]
}
