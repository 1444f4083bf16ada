package saga

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

// combinatorName formats the diagnostic name of a combinator invocation,
// e.g. "takeLatest([A, B], fetchUser)".
func combinatorName(combinator string, pattern Pattern, worker Worker) string {
	return fmt.Sprintf("%s(%s, %s)", combinator, patternName(pattern), funcName(worker))
}

// patternName renders slices and arrays as a bracketed list of their
// stringified entries and anything else with fmt.Sprint.
func patternName(pattern Pattern) string {
	v := reflect.ValueOf(pattern)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		entries := make([]string, v.Len())
		for i := range entries {
			entries[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return "[" + strings.Join(entries, ", ") + "]"
	default:
		return fmt.Sprint(pattern)
	}
}

// funcName returns the declared name of fn without its package path.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "<unknown>"
	}
	name := rf.Name()
	// "pkg.F[...]" -> "pkg.F"; type arguments may hold dots and slashes
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	name = path.Base(name)
	// "pkg.fetchUser" -> "fetchUser", "pkg.(*T).Run-fm" -> "Run"
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
