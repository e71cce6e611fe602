package customfields

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// separateStr splits "15m" into 15 and "m"
func separateStr(str string) (uint64, string, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	pos := strings.IndexFunc(str, func(r rune) bool { return !unicode.IsDigit(r) })
	if pos == -1 {
		pos = len(str)
	}
	if pos == 0 {
		return 0, "", fmt.Errorf("no number in %q", str)
	}
	number, err := strconv.ParseUint(str[:pos], 10, 64)
	if err != nil {
		return 0, "", err
	}
	return number, str[pos:], nil
}
