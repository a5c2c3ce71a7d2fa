package batch

import (
	"fmt"

	"LinearPanel/internal/calc/mix"
)

// MixInput solves several independent blends in one call, e.g. re-checking a
// whole worksheet of targets after a stock material changes.
type MixInput struct {
	Items []mix.Input `json:"items"`
}

type MixResult struct {
	Results []mix.Result `json:"results"`
}

func CalculateMix(in MixInput) (MixResult, error) {
	if len(in.Items) == 0 {
		return MixResult{}, fmt.Errorf("no items")
	}
	out := MixResult{Results: make([]mix.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := mix.Forward(item)
		if err != nil {
			return MixResult{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
