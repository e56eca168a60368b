package expr

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// The structural encoding tags every node with its kind: the variable is the
// string "X", a constant is {"Con": v}, a unary node is {"Sin": child}, a
// polygamma node is {"PolyGamma": [child, order]} and a binary node is
// {"Add": [left, right]}. Pow and Log list the base first.

var unaryTags = map[UnaryOp]string{
	OpSin:       "Sin",
	OpCos:       "Cos",
	OpTan:       "Tan",
	OpSec:       "Sec",
	OpCsc:       "Csc",
	OpCot:       "Cot",
	OpAsin:      "Asin",
	OpAcos:      "Acos",
	OpAtan:      "Atan",
	OpSinh:      "Sinh",
	OpCosh:      "Cosh",
	OpTanh:      "Tanh",
	OpAbs:       "Abs",
	OpFactorial: "Factorial",
	OpGamma:     "Gamma",
}

var binaryTags = map[BinaryOp]string{
	OpAdd: "Add",
	OpSub: "Sub",
	OpMul: "Mul",
	OpDiv: "Div",
	OpPow: "Pow",
	OpLog: "Log",
}

const (
	varTag       = "X"
	constTag     = "Con"
	polygammaTag = "PolyGamma"
)

var (
	unaryByTag  = make(map[string]UnaryOp, len(unaryTags))
	binaryByTag = make(map[string]BinaryOp, len(binaryTags))
)

func init() {
	for op, tag := range unaryTags {
		unaryByTag[tag] = op
	}
	for op, tag := range binaryTags {
		binaryByTag[tag] = op
	}
}

// Encode converts node into plain strings, maps and slices that any
// JSON or YAML encoder can write.
func Encode(node ExprNode) any {
	switch n := node.(type) {
	case *VarNode:
		return varTag
	case *ConstNode:
		if math.IsNaN(n.Val) || math.IsInf(n.Val, 0) {
			return map[string]any{constTag: strconv.FormatFloat(n.Val, 'g', -1, 64)}
		}
		return map[string]any{constTag: n.Val}
	case *UnaryNode:
		return map[string]any{unaryTags[n.Op]: Encode(n.Child)}
	case *PolygammaNode:
		return map[string]any{polygammaTag: []any{Encode(n.Child), n.Order}}
	case *BinaryNode:
		return map[string]any{binaryTags[n.Op]: []any{Encode(n.Left), Encode(n.Right)}}
	default:
		return nil
	}
}

func (v *VarNode) MarshalJSON() ([]byte, error)       { return json.Marshal(Encode(v)) }
func (c *ConstNode) MarshalJSON() ([]byte, error)     { return json.Marshal(Encode(c)) }
func (u *UnaryNode) MarshalJSON() ([]byte, error)     { return json.Marshal(Encode(u)) }
func (p *PolygammaNode) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(p)) }
func (b *BinaryNode) MarshalJSON() ([]byte, error)    { return json.Marshal(Encode(b)) }

func (v *VarNode) MarshalYAML() (any, error)       { return Encode(v), nil }
func (c *ConstNode) MarshalYAML() (any, error)     { return Encode(c), nil }
func (u *UnaryNode) MarshalYAML() (any, error)     { return Encode(u), nil }
func (p *PolygammaNode) MarshalYAML() (any, error) { return Encode(p), nil }
func (b *BinaryNode) MarshalYAML() (any, error)    { return Encode(b), nil }

// UnmarshalTree decodes the JSON form written by MarshalJSON.
func UnmarshalTree(data []byte) (ExprNode, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return Decode(v)
}

// Decode rebuilds a tree from the value Encode produces, or the same value
// after a round trip through a JSON or YAML decoder.
func Decode(v any) (ExprNode, error) {
	switch t := v.(type) {
	case string:
		if t == varTag {
			return X(), nil
		}
		return nil, fmt.Errorf("unknown tree tag: %q", t)
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("tree object must have exactly one key, got %d", len(t))
		}
		for tag, arg := range t {
			return decodeTagged(tag, arg)
		}
	}
	return nil, fmt.Errorf("unexpected tree value of type %T", v)
}

func decodeTagged(tag string, arg any) (ExprNode, error) {
	if tag == constTag {
		f, ok := toFloat(arg)
		if !ok {
			return nil, fmt.Errorf("invalid constant: %v", arg)
		}
		return C(f), nil
	}

	if op, ok := unaryByTag[tag]; ok {
		child, err := Decode(arg)
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Child: child}, nil
	}

	pair, ok := arg.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("%s needs a two-element list", tag)
	}

	if tag == polygammaTag {
		child, err := Decode(pair[0])
		if err != nil {
			return nil, err
		}
		order, ok := toFloat(pair[1])
		if !ok || order < 0 || order != math.Trunc(order) {
			return nil, fmt.Errorf("invalid polygamma order: %v", pair[1])
		}
		return &PolygammaNode{Child: child, Order: int(order)}, nil
	}

	op, ok := binaryByTag[tag]
	if !ok {
		return nil, fmt.Errorf("unknown tree tag: %q", tag)
	}
	left, err := Decode(pair[0])
	if err != nil {
		return nil, err
	}
	right, err := Decode(pair[1])
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: op, Left: left, Right: right}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
