package abd

import (
	"fmt"
	"sort"
	"strings"
)

// Call is the set of arguments for a single invocation of a decorated object.
// Keyword arguments are matched to positions using the parameter names declared
// with WithParams.
type Call struct {
	Args   []any
	Kwargs map[string]any
}

// Args is a convenience for building a Call with only positional arguments.
func Args(args ...any) Call {
	return Call{Args: args}
}

// With returns a copy of this call with the given keyword argument set.
// The existing keyword map is not modified.
func (c Call) With(name string, value any) Call {
	kwargs := make(map[string]any, len(c.Kwargs)+1)
	for k, v := range c.Kwargs {
		kwargs[k] = v
	}

	kwargs[name] = value
	c.Kwargs = kwargs
	return c
}

// String renders this call much like a call expression's argument list,
// e.g. (2, 3, b=4).  Keyword arguments are sorted by name.
func (c Call) String() string {
	var o strings.Builder
	o.WriteRune('(')
	writeArguments(&o, c.Args, c.Kwargs)
	o.WriteRune(')')
	return o.String()
}

func writeArguments(o *strings.Builder, args []any, kwargs map[string]any) {
	for i, a := range args {
		if i > 0 {
			o.WriteString(", ")
		}

		fmt.Fprintf(o, "%#v", a)
	}

	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 || len(args) > 0 {
			o.WriteString(", ")
		}

		fmt.Fprintf(o, "%s=%#v", k, kwargs[k])
	}
}

// Results holds the values returned by a decorated object.  A trailing error
// return is never part of Results.  It is reported as the call's error instead.
type Results []any

// First returns the first result, or nil if there are no results.
// For the common case of single-valued functions, this is the return value.
func (r Results) First() any {
	if len(r) > 0 {
		return r[0]
	}

	return nil
}
