package util

import "regexp"

// MaxKeyLength bounds preview keys so they stay valid file names on every platform.
const MaxKeyLength = 128

var safeKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// IsSafeKey reports whether key can be used as a file name stem and a URL path segment.
func IsSafeKey(key string) bool {
	if key == "" || len(key) > MaxKeyLength {
		return false
	}
	return safeKey.MatchString(key)
}
