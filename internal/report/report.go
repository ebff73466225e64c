// Package report renders solve results and loader diagnostics for output.
//
// The text format is the plain output file format:
//
//	The minimal price is: 6.
//	The minimal price is: -1.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-railway/internal/assemble"
	"github.com/alnah/go-railway/internal/catalog"
)

// Format selects the rendering.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatText

// infeasiblePrice is what the text format prints when no railway exists.
const infeasiblePrice = "-1"

// ParseFormat validates a format name. The empty string selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return DefaultFormat, nil
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownFormat, s, FormatText, FormatJSON)
	}
}

// Result renders res. Text output has no trailing newline.
func Result(res assemble.Result, f Format) (string, error) {
	return Plan(assemble.Plan{Result: res}, f)
}

// Plan renders the price of plan followed by its segments, one per line in
// railway order. A plan without segments renders exactly like Result.
func Plan(plan assemble.Plan, f Format) (string, error) {
	switch f {
	case FormatText:
		return planText(plan), nil
	case FormatJSON:
		return planJSON(plan)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func planText(plan assemble.Plan) string {
	price := infeasiblePrice
	if p, ok := plan.Result.Price(); ok {
		price = fmt.Sprintf("%d", p)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The minimal price is: %s.", price)
	for _, s := range plan.Segments {
		b.WriteString("\n")
		b.WriteString(s.String())
	}
	return b.String()
}

type jsonSegment struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Length uint64 `json:"length"`
	Price  uint64 `json:"price"`
}

type jsonResult struct {
	Feasible bool          `json:"feasible"`
	Price    *uint64       `json:"price,omitempty"`
	Plan     []jsonSegment `json:"plan,omitempty"`
}

func planJSON(plan assemble.Plan) (string, error) {
	out := jsonResult{Feasible: plan.Result.Feasible()}
	if p, ok := plan.Result.Price(); ok {
		out.Price = &p
	}
	for _, s := range plan.Segments {
		out.Plan = append(out.Plan, jsonSegment{
			Start:  string(s.Start),
			End:    string(s.End),
			Length: s.Length,
			Price:  s.Price,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// Diagnostic returns the user-facing message for a catalog loading error,
// as it appears in the output file. ok is false for errors that are not
// loader diagnostics.
func Diagnostic(err error) (msg string, ok bool) {
	var lineErr *catalog.InvalidLineError
	switch {
	case err == nil:
		return "", false
	case errors.As(err, &lineErr):
		return fmt.Sprintf("Invalid input in line: %d", lineErr.Line), true
	case errors.Is(err, catalog.ErrFileNotFound):
		return "File does not exist.", true
	case errors.Is(err, catalog.ErrEmptyInput):
		return "File is empty.", true
	default:
		return "", false
	}
}
