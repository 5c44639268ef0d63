package strings

import (
	"strings"
)

// supply suffix if text has not.
//
// args:
//     - text: target text
//     - suffix: suffix
// return:
//     text same as input when that has suffix.
//     otherwise, text + suffix.
func SuppySuffix(text, suffix string) string {
	if strings.HasSuffix(text, suffix) {
		return text
	}
	return text + suffix
}
