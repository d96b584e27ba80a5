// Package params resolves "key=value" parameter lists passed to exporters by scripts.
//
// Lookup matches by prefix, not by "key=": existing scripts depend on the first entry
// that merely starts with the key being returned.
package params

import (
	"slices"
	"strconv"
	"strings"
)

// Lookup returns the first entry in parameters that begins with key.
// The whole entry is returned; use Value to strip the key.
func Lookup(parameters []string, key string) (string, bool) {
	for _, p := range parameters {
		if strings.HasPrefix(p, key) {
			return p, true
		}
	}
	return "", false
}

// Exact returns the first entry whose key is exactly key.
func Exact(parameters []string, key string) (string, bool) {
	for _, p := range parameters {
		if k, _, ok := strings.Cut(p, "="); ok && k == key {
			return p, true
		}
	}
	return "", false
}

// Value returns the text after the first '=' of entry, or entry itself if it has none.
func Value(entry string) string {
	if _, v, ok := strings.Cut(entry, "="); ok {
		return v
	}
	return entry
}

// Bool parses the value of entry as a boolean.
func Bool(entry string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(Value(entry)))
}

// Resolver picks between prefix and exact matching.
type Resolver struct {
	ExactKeys bool
}

func (r Resolver) entry(parameters []string, key string) (string, bool) {
	if r.ExactKeys {
		return Exact(parameters, key)
	}
	return Lookup(parameters, key)
}

// Get looks up key and returns its value.
func (r Resolver) Get(parameters []string, key string) (string, bool) {
	entry, ok := r.entry(parameters, key)
	if !ok {
		return "", false
	}
	return Value(entry), true
}

// Flag looks up a boolean flag. A bare key is true. A value Bool rejects
// counts as true unless it is blank.
func (r Resolver) Flag(parameters []string, key string) (value, found bool) {
	entry, ok := r.entry(parameters, key)
	if !ok && r.ExactKeys && slices.Contains(parameters, key) {
		entry, ok = key, true
	}
	if !ok {
		return false, false
	}
	if !strings.Contains(entry, "=") {
		return true, true
	}
	if b, err := Bool(entry); err == nil {
		return b, true
	}
	return strings.TrimSpace(Value(entry)) != "", true
}
