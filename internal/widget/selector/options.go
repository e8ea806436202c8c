package selector

import (
	"fmt"

	"github.com/zlovtnik/gshell/pkg/fp"
)

// Filter returns the well-formed options in their original order, along with
// one error per entry that was left out. An option is well-formed when both
// its value and its label are non-empty.
func Filter(opts []Option) ([]Option, fp.ValidationErrors) {
	kept := make([]Option, 0, len(opts))
	var dropped fp.ValidationErrors
	for i, o := range opts {
		field := fmt.Sprintf("options[%d]", i)
		switch {
		case o.Value == "" && o.Label == "":
			dropped = append(dropped, fp.ValidationError{Field: field, Message: "missing value and label"})
		case o.Value == "":
			dropped = append(dropped, fp.ValidationError{Field: field, Message: "missing value"})
		case o.Label == "":
			dropped = append(dropped, fp.ValidationError{Field: field, Message: "missing label"})
		default:
			kept = append(kept, o)
		}
	}
	return kept, dropped
}

// Validate is the strict form of Filter: it fails if any entry is malformed.
func Validate(opts []Option) fp.Result[[]Option] {
	kept, dropped := Filter(opts)
	if dropped.HasErrors() {
		return fp.Failure[[]Option](dropped)
	}
	return fp.Success(kept)
}
