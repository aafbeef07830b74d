package diag

// Category classifies a diagnostic.
type Category string

const (
	// MergeConflict is raised by the layer merge engine. It is a warning
	// unless the merge could not be carried out at all.
	MergeConflict Category = "MergeConflict"
	// UnresolvedReference means a named datatype could not be found.
	UnresolvedReference Category = "UnresolvedReference"
	// CyclicTypedef means a typedef chain refers back to itself.
	CyclicTypedef Category = "CyclicTypedef"
	// DuplicateName means two definitions share a name in one scope.
	DuplicateName Category = "DuplicateName"
	// ConstraintRangeError means a numeric constraint does not fit its type.
	ConstraintRangeError Category = "ConstraintRangeError"
	// ArraySizeConflict means an array size is invalid or given twice
	// with different values.
	ArraySizeConflict Category = "ArraySizeConflict"
	// InvalidNode means the tree does not have the expected shape.
	InvalidNode Category = "InvalidNode"
	// LayerSchema is raised by layer type registry rules.
	LayerSchema Category = "LayerSchema"
)

func Categories() []Category {
	return []Category{
		MergeConflict,
		UnresolvedReference,
		CyclicTypedef,
		DuplicateName,
		ConstraintRangeError,
		ArraySizeConflict,
		InvalidNode,
		LayerSchema,
	}
}
