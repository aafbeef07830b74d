package ir

// ToAny converts node to plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if i, ok := node.Int(); ok && node.Int64 != nil {
			return i
		}
		if f, ok := node.Float(); ok {
			return f
		}
		return node.Number
	case BoolType:
		return node.Bool
	}
	return nil
}
