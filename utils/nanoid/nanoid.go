package nanoid

import (
	"strings"

	"github.com/ncobase/example-api/consts"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 16
)

// getSize returns the provided size or the default size if not provided
func getSize(l ...int) int {
	if len(l) > 0 && l[0] > 0 {
		return l[0]
	}
	return defaultSize
}

// Must generates a NanoID with optional length using default alphabet
func Must(l ...int) string {
	return gonanoid.Must(getSize(l...))
}

// Lower generates a NanoID using only lowercase letters with optional length
func Lower(l ...int) string {
	return gonanoid.MustGenerate(consts.Lowercase, getSize(l...))
}

// PrimaryKey returns a function that generates primary keys with specified length
func PrimaryKey(l ...int) func() string {
	size := consts.PrimaryKeySize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return func() string {
		return gonanoid.MustGenerate(consts.PrimaryKey, size)
	}
}

// IsPrimaryKey verifies if a string is a valid primary key
func IsPrimaryKey(id string) bool {
	if len(id) != consts.PrimaryKeySize {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(consts.PrimaryKey, c) {
			return false
		}
	}
	return true
}
