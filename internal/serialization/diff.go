package serialization

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DescribeAttributes renders attributes one per line as "Key: Value".
func DescribeAttributes(attrs []domain.Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.Key)
		b.WriteString(": ")
		b.WriteString(a.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// DiffAttributes returns a line-oriented patch that turns before into after,
// or "" when they render identically.
func DiffAttributes(before, after []domain.Attribute) string {
	src := DescribeAttributes(before)
	dst := DescribeAttributes(after)
	if src == dst {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(src, dst)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.PatchToText(dmp.PatchMake(src, diffs))
}

// Drift compares stored attributes against the canonical serialization of
// the configuration they decode to.
type Drift struct {
	Result    *Result            `json:"result"`
	Canonical []domain.Attribute `json:"canonical"`
	Patch     string             `json:"patch,omitempty"`
}

// HasDrift reports whether the stored attributes differ from canonical form.
func (d Drift) HasDrift() bool {
	return d.Patch != ""
}

// Verify decodes attrs and re-serializes the result so an operator can see
// whether an order's attributes still match what would be written today.
func Verify(ctx context.Context, attrs []domain.Attribute) (*Drift, error) {
	res, err := Deserialize(ctx, attrs)
	if err != nil {
		return nil, err
	}
	canonical, err := Serialize(res.Config, res.Specialty)
	if err != nil {
		return nil, fmt.Errorf("failed to re-serialize configuration: %w", err)
	}
	return &Drift{
		Result:    res,
		Canonical: canonical,
		Patch:     DiffAttributes(attrs, canonical),
	}, nil
}
