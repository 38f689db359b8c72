// Package envutil reads configuration from the process environment.
package envutil

import (
	"log"
	"os"
	"strconv"
)

// GetenvDefault returns the value of the environment variable, or the
// fallback when the variable is not set.
func GetenvDefault(name, fallback string) string {
	val, found := os.LookupEnv(name)
	if !found {
		return fallback
	}
	return val
}

// GetenvDefaultInt is GetenvDefault for integer-valued variables. A set
// value that does not parse as an integer is fatal.
func GetenvDefaultInt(name string, fallback int) int {
	val, found := os.LookupEnv(name)
	if !found {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("environment variable %s should be an integer: %v", name, err)
	}
	return n
}
