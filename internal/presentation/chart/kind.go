package chart

import (
	"fmt"
	"strings"
)

// Kind is a chart layout
type Kind string

const (
	// KindBars draws one horizontal track per timer with a bar per record
	KindBars Kind = "barh"
	// KindSeries draws per-step durations on a log scale
	KindSeries Kind = "ts"
)

// Kinds lists the supported layouts
var Kinds = []Kind{KindBars, KindSeries}

// ParseKind validates a chart kind name
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case KindBars, KindSeries:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chart type %q (possibilities: barh, ts)", value)
	}
}

// ParseKinds parses repeated and/or comma separated kinds, keeping the
// requested order. Repeated kinds are only drawn once.
func ParseKinds(values []string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			k, err := ParseKind(part)
			if err != nil {
				return nil, err
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("at least one chart type is required (possibilities: barh, ts)")
	}
	return kinds, nil
}
