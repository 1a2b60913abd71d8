package api

import (
	"regexp"
	"strings"
)

var gameCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeGameCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
