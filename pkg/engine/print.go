package engine

import (
	"errors"
	"reflect"

	"github.com/ib-77/hopcore/pkg/engine/core"
)

const (
	unhandledHeader = "Unhandled exception: "
	topLevelHeader  = "Top level handler raised: "
	causeHeader     = "Caused by: "
	noOtherCauses   = "No other causes."
)

// maxCauses bounds the walk so that an error unwrapping to itself can still
// be printed.
const maxCauses = 64

func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func describe(err error) string {
	if isNil(err) {
		return "<nil>"
	}
	return err.Error()
}

// Causes returns err followed by each error reachable through errors.Unwrap,
// at most maxCauses of them.
func Causes(err error) []error {
	res := make([]error, 0, 1)
	for ; !isNil(err) && len(res) < maxCauses; err = errors.Unwrap(err) {
		res = append(res, err)
	}
	return res
}

// PrintExn writes err and its causal chain to sink, one line per link, then
// a closing "No other causes." line.
func PrintExn(sink core.Sink, header string, err error) {
	causes := Causes(err)
	if len(causes) == 0 {
		sink.WriteLine(header + describe(err))
	}
	for _, cause := range causes {
		sink.WriteLine(header + describe(cause))
		header = causeHeader
	}
	sink.WriteLine(noOtherCauses)
}
