package cfa

import "github.com/katalvlaran/cfa/ast"

// ellipsisValue is the folded value of ast.EllipsisLit: a distinct,
// always-truthy singleton.
type ellipsisValue struct{}

// foldConstant attempts to read the compile-time value of a foldable
// expression node. The second return value reports whether e is one of the
// recognised constant kinds at all; a false result means the analyser must
// treat e as opaque and keep every possible branch reachable.
func foldConstant(e ast.Expr) (value any, ok bool) {
	switch v := e.(type) {
	case *ast.StringLit:
		return v.Value, true
	case *ast.BytesLit:
		return v.Value, true
	case *ast.IntLit:
		return v.Value, true
	case *ast.FloatLit:
		return v.Value, true
	case *ast.ComplexLit:
		return complex(v.Real, v.Imag), true
	case *ast.EllipsisLit:
		return ellipsisValue{}, true
	case *ast.NameConstant:
		switch v.Kind {
		case ast.NameConstantTrue:
			return true, true
		case ast.NameConstantFalse:
			return false, true
		case ast.NameConstantNone:
			return nil, true
		default:
			return nil, false
		}
	case *ast.ConstantLit:
		return v.Value, true
	default:
		return nil, false
	}
}

// truthy applies the analysed language's truthiness rules to a folded
// constant value: empty strings/bytes, zero numbers and the null constant
// are falsy, everything else (including ellipsis) is truthy.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []byte:
		return len(v) != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case complex128:
		return v != 0
	default:
		return true
	}
}
