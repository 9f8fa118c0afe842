package catalog

import (
	"encoding/json"
	"fmt"
)

// Requirement is a closed boolean expression over course references.
// The only implementations are NoneReq, CourseReq, AllOf and AnyOf, so
// evaluation switches are exhaustive.
type Requirement interface {
	isRequirement()
}

// NoneReq is the always-satisfied requirement.
type NoneReq struct{}

// CourseReq requires completion of one course, optionally at or above a
// minimum grade.
type CourseReq struct {
	Code     string
	MinGrade Grade // empty means any passing completion
}

// AllOf is satisfied when every child is satisfied.
type AllOf struct {
	Children []Requirement
}

// AnyOf is satisfied when at least one child is satisfied.
type AnyOf struct {
	Children []Requirement
}

func (NoneReq) isRequirement()   {}
func (CourseReq) isRequirement() {}
func (AllOf) isRequirement()     {}
func (AnyOf) isRequirement()     {}

// References returns every course code referenced by the expression in
// left-to-right traversal order, normalized, without duplicates.
func References(req Requirement) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Requirement)
	walk = func(r Requirement) {
		switch v := r.(type) {
		case NoneReq, nil:
		case CourseReq:
			code := NormalizeCode(v.Code)
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		case AllOf:
			for _, child := range v.Children {
				walk(child)
			}
		case AnyOf:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	walk(req)
	return out
}

type requirementJSON struct {
	Type     string            `json:"type"`
	Code     string            `json:"code,omitempty"`
	MinGrade string            `json:"minGrade,omitempty"`
	Of       []json.RawMessage `json:"of,omitempty"`
}

// MarshalRequirement encodes a requirement tree as JSON. This is the
// storage format used by the catalog repos and the seed file.
func MarshalRequirement(req Requirement) ([]byte, error) {
	switch v := req.(type) {
	case nil, NoneReq:
		return json.Marshal(requirementJSON{Type: "none"})
	case CourseReq:
		return json.Marshal(requirementJSON{Type: "course", Code: v.Code, MinGrade: string(v.MinGrade)})
	case AllOf:
		return marshalGroup("and", v.Children)
	case AnyOf:
		return marshalGroup("or", v.Children)
	default:
		return nil, fmt.Errorf("unknown requirement type %T", req)
	}
}

func marshalGroup(kind string, children []Requirement) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(children))
	for _, child := range children {
		raw, err := MarshalRequirement(child)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(requirementJSON{Type: kind, Of: raws})
}

// UnmarshalRequirement decodes the JSON storage format. Empty or null
// input decodes as NoneReq.
func UnmarshalRequirement(data []byte) (Requirement, error) {
	if len(data) == 0 || string(data) == "null" {
		return NoneReq{}, nil
	}
	var node requirementJSON
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("requirement parse: %w", err)
	}
	switch node.Type {
	case "", "none":
		return NoneReq{}, nil
	case "course":
		if node.Code == "" {
			return nil, fmt.Errorf("requirement course node missing code")
		}
		var min Grade
		if node.MinGrade != "" {
			parsed, err := ParseGrade(node.MinGrade)
			if err != nil {
				return nil, err
			}
			min = parsed
		}
		return CourseReq{Code: node.Code, MinGrade: min}, nil
	case "and":
		children, err := unmarshalGroup(node.Of)
		if err != nil {
			return nil, err
		}
		return AllOf{Children: children}, nil
	case "or":
		children, err := unmarshalGroup(node.Of)
		if err != nil {
			return nil, err
		}
		return AnyOf{Children: children}, nil
	default:
		return nil, fmt.Errorf("unknown requirement node type %q", node.Type)
	}
}

func unmarshalGroup(raws []json.RawMessage) ([]Requirement, error) {
	children := make([]Requirement, 0, len(raws))
	for _, raw := range raws {
		child, err := UnmarshalRequirement(raw)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
