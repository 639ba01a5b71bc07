// ABOUTME: Input validation for object locations supplied over the API
// ABOUTME: Rejects malformed bucket names and object keys before any fetch

package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// bucketNamePattern matches S3 bucket names: 3-63 lowercase letters, digits,
// dots, and hyphens, starting and ending with a letter or digit.
var bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// maxObjectKeyBytes is the S3 object key length limit.
const maxObjectKeyBytes = 1024

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateBucketName validates that a bucket name has a safe format.
func ValidateBucketName(name string) error {
	if name == "" {
		return fmt.Errorf("bucket name cannot be empty")
	}
	if !bucketNamePattern.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid bucket name format: %s", sanitizeForLog(name))
	}
	return nil
}

// ValidateObjectKey validates an object key: valid UTF-8, at most 1024 bytes,
// and free of control characters.
func ValidateObjectKey(key string) error {
	if key == "" {
		return fmt.Errorf("object key cannot be empty")
	}
	if len(key) > maxObjectKeyBytes {
		return fmt.Errorf("object key exceeds %d bytes", maxObjectKeyBytes)
	}
	if !utf8.ValidString(key) || sanitizeForLog(key) != key {
		return fmt.Errorf("invalid object key: %q", sanitizeForLog(key))
	}
	return nil
}
