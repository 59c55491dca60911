package services

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// validImageRef accepts absolute URLs, site paths and inline data URLs.
func validImageRef(image string) bool {
	for _, prefix := range []string{"http://", "https://", "/", "data:image"} {
		if strings.HasPrefix(image, prefix) {
			return true
		}
	}
	return false
}
