package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// envReader collects environment values and remembers the first variable
// that failed to parse.
type envReader struct {
	err error
}

func (r *envReader) fail(key, value string, cause error) {
	if r.err == nil {
		r.err = &Error{Message: fmt.Sprintf("invalid %s: %q", key, value), Cause: cause}
	}
}

func (r *envReader) str(key string) string {
	return os.Getenv(key)
}

func (r *envReader) integer(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.fail(key, value, err)
		return 0
	}
	return n
}

func (r *envReader) boolean(key string) bool {
	value := os.Getenv(key)
	if value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.fail(key, value, err)
		return false
	}
	return b
}

func (r *envReader) duration(key string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.fail(key, value, err)
		return 0
	}
	return d
}
