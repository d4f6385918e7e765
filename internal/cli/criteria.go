package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// parseCriteria converts --where key=value pairs and --in key=v1,v2 lists
// into query criteria. Uses strings.Cut() for the split, so values may
// contain '='.
func parseCriteria(where, in []string) (tabload.Criteria, error) {
	if len(where) == 0 && len(in) == 0 {
		return nil, nil
	}
	criteria := make(tabload.Criteria, len(where)+len(in))

	for _, pair := range where {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("condition %q is not in column=value format (example: --where department=Engineering)", pair)
		}
		coerced, err := coerceValue(key, value)
		if err != nil {
			return nil, err
		}
		criteria[key] = coerced
	}

	for _, pair := range in {
		key, list, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("condition %q is not in column=v1,v2 format (example: --in city=Boston,Denver)", pair)
		}
		values := strings.Split(list, ",")
		coerced := make([]any, len(values))
		for i, v := range values {
			c, err := coerceValue(key, v)
			if err != nil {
				return nil, err
			}
			coerced[i] = c
		}
		criteria[key] = coerced
	}

	return criteria, nil
}

// coerceValue turns the flag's string form into the type the column holds,
// so numeric comparisons are numeric on the backend. Unknown columns pass
// through untouched; the compiler rejects them with the proper error.
func coerceValue(column, raw string) (any, error) {
	switch column {
	case tabload.ColID:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("condition on %q needs an integer, got %q", column, raw)
		}
		return n, nil
	case tabload.ColAge:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("condition on %q needs an integer, got %q", column, raw)
		}
		return n, nil
	case tabload.ColSalary:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("condition on %q needs a number, got %q", column, raw)
		}
		return f, nil
	default:
		return raw, nil
	}
}
