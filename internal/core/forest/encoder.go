package forest

import (
	"errors"
	"fmt"
	"sort"
)

// LabelEncoder maps string labels to dense integer codes. Codes follow the
// lexical order of the distinct labels seen during Fit.
type LabelEncoder struct {
	Classes []string
	index   map[string]int
}

func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.New("cannot fit label encoder on empty input")
	}
	seen := make(map[string]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	e.Classes = classes
	e.index = make(map[string]int, len(classes))
	for i, c := range classes {
		e.index[c] = i
	}
	return nil
}

func (e *LabelEncoder) Transform(labels []string) ([]int, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, fmt.Errorf("unseen label %q", l)
		}
		codes[i] = code
	}
	return codes, nil
}

func (e *LabelEncoder) Inverse(code int) (string, error) {
	if e.index == nil {
		return "", ErrNotFitted
	}
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("label code %d out of range [0, %d)", code, len(e.Classes))
	}
	return e.Classes[code], nil
}
