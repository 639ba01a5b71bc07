// ABOUTME: Tests for input validation functions
// ABOUTME: Verifies bucket name and object key validation

package services

import (
	"strings"
	"testing"
)

func TestValidateBucketName_Valid(t *testing.T) {
	for _, name := range []string{
		"inventory",
		"abc",
		"my-bucket.2024",
		"0numeric-start",
		strings.Repeat("a", 63),
	} {
		t.Run(name, func(t *testing.T) {
			if err := ValidateBucketName(name); err != nil {
				t.Errorf("ValidateBucketName(%q) returned error: %v, expected nil", name, err)
			}
		})
	}
}

func TestValidateBucketName_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
	}{
		{"empty", ""},
		{"too short", "ab"},
		{"too long", strings.Repeat("a", 64)},
		{"uppercase", "Inventory"},
		{"underscore", "my_bucket"},
		{"leading hyphen", "-bucket"},
		{"trailing dot", "bucket."},
		{"double dot", "my..bucket"},
		{"path traversal", "../etc"},
		{"slash", "a/b/c"},
		{"newline", "buck\net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBucketName(tt.bucket); err == nil {
				t.Errorf("ValidateBucketName(%q) returned nil, expected error", tt.bucket)
			}
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	valid := []string{"servers.json", "2024/q1/servers list.json", "a+b=c", strings.Repeat("k", 1024)}
	for _, key := range valid {
		if err := ValidateObjectKey(key); err != nil {
			t.Errorf("ValidateObjectKey(%q) returned error: %v", key, err)
		}
	}

	invalid := []string{"", strings.Repeat("k", 1025), "bad\x00key", "line\nbreak", "tab\tkey", "\xff\xfe"}
	for _, key := range invalid {
		if err := ValidateObjectKey(key); err == nil {
			t.Errorf("ValidateObjectKey(%q) returned nil, expected error", key)
		}
	}
}

func TestValidate_ErrorMessageSanitized(t *testing.T) {
	err := ValidateBucketName("evil\r\nINJECTED")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.ContainsAny(err.Error(), "\r\n") {
		t.Errorf("error message contains control characters: %q", err.Error())
	}
}
