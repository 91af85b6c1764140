// Package debug gates diagnostic logging on KFORM_DEBUG_* environment
// variables. Output goes to stderr and is meant for humans chasing a
// problem, not for machine consumption.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Map      bool
	Envelope bool
	Selector bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("KFORM_DEBUG_PARSE")
	d.Map = boolEnv("KFORM_DEBUG_MAP")
	d.Envelope = boolEnv("KFORM_DEBUG_ENVELOPE")
	d.Selector = boolEnv("KFORM_DEBUG_SELECTOR")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Map() bool {
	return d.Map
}
func Envelope() bool {
	return d.Envelope
}
func Selector() bool {
	return d.Selector
}
