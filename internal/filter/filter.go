package filter

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

// Expression is a boolean filter over Cost Explorer records. Exactly one
// of the four fields must be set at every node; the JSON form matches the
// Cost Explorer wire format, so configured filters pass through verbatim.
type Expression struct {
	Dimensions *DimensionClause `json:"Dimensions,omitempty"`
	Not        *Expression      `json:"Not,omitempty"`
	And        []Expression     `json:"And,omitempty"`
	Or         []Expression     `json:"Or,omitempty"`
}

// DimensionClause matches records whose dimension Key takes one of Values.
type DimensionClause struct {
	Key    string   `json:"Key"`
	Values []string `json:"Values"`
}

// Default returns the standard filter excluding credit and refund style
// records, which otherwise show up as negative daily amounts.
func Default() *Expression {
	return &Expression{
		Not: &Expression{
			Dimensions: &DimensionClause{
				Key: "RECORD_TYPE",
				Values: []string{
					"Credit",
					"Refund",
					"Enterprise Discount Program Discount",
				},
			},
		},
	}
}

// Parse decodes a JSON-encoded filter expression and validates its shape.
func Parse(data []byte) (*Expression, error) {
	var expr Expression
	if err := json.Unmarshal(data, &expr); err != nil {
		return nil, fmt.Errorf("failed to parse filter JSON: %w", err)
	}
	if err := expr.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &expr, nil
}

// Validate checks that every node carries exactly one operator and that
// dimension clauses and conjunction lists are well formed.
func (e *Expression) Validate() error {
	set := 0
	if e.Dimensions != nil {
		set++
	}
	if e.Not != nil {
		set++
	}
	if len(e.And) > 0 {
		set++
	}
	if len(e.Or) > 0 {
		set++
	}
	if set == 0 {
		return fmt.Errorf("empty filter node: one of Dimensions, Not, And, Or is required")
	}
	if set > 1 {
		return fmt.Errorf("ambiguous filter node: only one of Dimensions, Not, And, Or may be set")
	}

	switch {
	case e.Dimensions != nil:
		if e.Dimensions.Key == "" {
			return fmt.Errorf("dimension clause has empty Key")
		}
		if len(e.Dimensions.Values) == 0 {
			return fmt.Errorf("dimension clause %q has no Values", e.Dimensions.Key)
		}
	case e.Not != nil:
		if err := e.Not.Validate(); err != nil {
			return err
		}
	case len(e.And) > 0:
		if len(e.And) < 2 {
			return fmt.Errorf("And requires at least two sub-expressions")
		}
		for i := range e.And {
			if err := e.And[i].Validate(); err != nil {
				return err
			}
		}
	case len(e.Or) > 0:
		if len(e.Or) < 2 {
			return fmt.Errorf("Or requires at least two sub-expressions")
		}
		for i := range e.Or {
			if err := e.Or[i].Validate(); err != nil {
				return err
			}
		}
	}

	return nil
}

// ToSDK converts the expression to the Cost Explorer request type.
func (e *Expression) ToSDK() *types.Expression {
	if e == nil {
		return nil
	}

	out := &types.Expression{}
	switch {
	case e.Dimensions != nil:
		out.Dimensions = &types.DimensionValues{
			Key:    types.Dimension(e.Dimensions.Key),
			Values: e.Dimensions.Values,
		}
	case e.Not != nil:
		out.Not = e.Not.ToSDK()
	case len(e.And) > 0:
		out.And = make([]types.Expression, len(e.And))
		for i := range e.And {
			out.And[i] = *e.And[i].ToSDK()
		}
	case len(e.Or) > 0:
		out.Or = make([]types.Expression, len(e.Or))
		for i := range e.Or {
			out.Or[i] = *e.Or[i].ToSDK()
		}
	}

	return out
}
