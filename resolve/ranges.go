package resolve

import (
	"math"
	"strconv"

	"github.com/signadot/idlayer/ir"

	"fortio.org/safecast"
)

func intFits[T safecast.Integer](n *ir.Node) bool {
	if n.Int64 != nil {
		_, err := safecast.Conv[T](*n.Int64)
		return err == nil
	}
	u, err := strconv.ParseUint(n.Number, 10, 64)
	if err != nil {
		return false
	}
	_, err = safecast.Conv[T](u)
	return err == nil
}

var integerFits = map[string]func(*ir.Node) bool{
	"int8":   intFits[int8],
	"int16":  intFits[int16],
	"int32":  intFits[int32],
	"int64":  intFits[int64],
	"uint8":  intFits[uint8],
	"uint16": intFits[uint16],
	"uint32": intFits[uint32],
	"uint64": intFits[uint64],
}

// isInteger reports whether a number node is written as an integer.
func isInteger(n *ir.Node) bool {
	if n.Type != ir.NumberType {
		return false
	}
	if n.Int64 != nil {
		return true
	}
	_, err := strconv.ParseUint(n.Number, 10, 64)
	return err == nil
}

// fits reports whether the number n is representable by the numeric
// primitive prim.
func fits(prim string, n *ir.Node) bool {
	if f, ok := integerFits[prim]; ok {
		return isInteger(n) && f(n)
	}
	v, ok := n.Float()
	if !ok || math.IsNaN(v) {
		return false
	}
	switch prim {
	case "float":
		return math.Abs(v) <= math.MaxFloat32
	case "double":
		return !math.IsInf(v, 0)
	}
	return false
}

// less reports whether number a is smaller than number b.
func less(a, b *ir.Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 < *b.Int64
	}
	af, _ := a.Float()
	bf, _ := b.Float()
	return af < bf
}
