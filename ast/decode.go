package ast

import (
	"encoding/json"
	"fmt"
)

// Kind strings used as the JSON discriminator. These never leak into cfa —
// dispatch there is a Go type switch, not a string compare.
const (
	kindPass             = "Pass"
	kindGlobal           = "Global"
	kindNonlocal         = "Nonlocal"
	kindBreak            = "Break"
	kindContinue         = "Continue"
	kindImport           = "Import"
	kindImportFrom       = "ImportFrom"
	kindAssert           = "Assert"
	kindAssign           = "Assign"
	kindAugAssign        = "AugAssign"
	kindAnnAssign        = "AnnAssign"
	kindDelete           = "Delete"
	kindExprStmt         = "ExprStmt"
	kindReturn           = "Return"
	kindRaise            = "Raise"
	kindFunctionDef      = "FunctionDef"
	kindAsyncFunctionDef = "AsyncFunctionDef"
	kindClassDef         = "ClassDef"
	kindIf               = "If"
	kindWhile            = "While"
	kindFor              = "For"
	kindAsyncFor         = "AsyncFor"
	kindTry              = "Try"
	kindWith             = "With"
	kindAsyncWith        = "AsyncWith"
	kindModule           = "Module"

	kindOpaque       = "Opaque"
	kindStringLit    = "StringLit"
	kindBytesLit     = "BytesLit"
	kindIntLit       = "IntLit"
	kindFloatLit     = "FloatLit"
	kindComplexLit   = "ComplexLit"
	kindEllipsisLit  = "EllipsisLit"
	kindNameConstant = "NameConstant"
	kindConstantLit  = "ConstantLit"
)

type kindHeader struct {
	Kind string `json:"kind"`
}

func peekKind(data []byte) (string, error) {
	var h kindHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return "", fmt.Errorf("ast: peek kind: %w", err)
	}
	if h.Kind == "" {
		return "", fmt.Errorf("ast: peek kind: missing \"kind\" field")
	}
	return h.Kind, nil
}

func withKind(kind string, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ast: encode %s: %w", kind, err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("ast: encode %s: %w", kind, err)
	}
	kindJSON, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	m["kind"] = kindJSON
	return json.Marshal(m)
}

func isJSONNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}

// DecodeExpr decodes a single expression node. A null or empty payload
// decodes to (nil, nil): optional expression fields stay nil pointers.
func DecodeExpr(data []byte) (Expr, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindOpaque:
		var v Opaque
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindStringLit:
		var v StringLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindBytesLit:
		var v BytesLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindIntLit:
		var v IntLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindFloatLit:
		var v FloatLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindComplexLit:
		var v ComplexLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindEllipsisLit:
		var v EllipsisLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindNameConstant:
		var v NameConstant
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case kindConstantLit:
		var v ConstantLit
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("ast: unrecognised expression kind %q", kind)
	}
}

// DecodeExprs decodes a JSON array of expression nodes.
func DecodeExprs(data []byte) ([]Expr, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("ast: decode expr list: %w", err)
	}
	out := make([]Expr, 0, len(raws))
	for _, raw := range raws {
		e, err := DecodeExpr(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func encodeExpr(e Expr) (json.RawMessage, error) {
	if e == nil {
		return json.RawMessage("null"), nil
	}
	m, ok := e.(json.Marshaler)
	if !ok {
		return nil, fmt.Errorf("ast: expression %T does not implement json.Marshaler", e)
	}
	return m.MarshalJSON()
}

func encodeExprs(es []Expr) (json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(es))
	for _, e := range es {
		raw, err := encodeExpr(e)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

// DecodeStmt decodes a single statement node, dispatching on its "kind"
// field and recursing into any nested statement/expression payloads.
func DecodeStmt(data []byte) (Stmt, error) {
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindPass:
		var v Pass
		return &v, json.Unmarshal(data, &v)
	case kindGlobal:
		var v Global
		return &v, json.Unmarshal(data, &v)
	case kindNonlocal:
		var v Nonlocal
		return &v, json.Unmarshal(data, &v)
	case kindBreak:
		var v Break
		return &v, json.Unmarshal(data, &v)
	case kindContinue:
		var v Continue
		return &v, json.Unmarshal(data, &v)
	case kindImport:
		var v Import
		return &v, json.Unmarshal(data, &v)
	case kindImportFrom:
		var v ImportFrom
		return &v, json.Unmarshal(data, &v)
	case kindAssert:
		return decodeAssert(data)
	case kindAssign:
		return decodeAssign(data)
	case kindAugAssign:
		return decodeAugAssign(data)
	case kindAnnAssign:
		return decodeAnnAssign(data)
	case kindDelete:
		return decodeDelete(data)
	case kindExprStmt:
		return decodeExprStmt(data)
	case kindReturn:
		return decodeReturn(data)
	case kindRaise:
		return decodeRaise(data)
	case kindFunctionDef:
		return decodeFunctionDef(data)
	case kindAsyncFunctionDef:
		return decodeAsyncFunctionDef(data)
	case kindClassDef:
		return decodeClassDef(data)
	case kindIf:
		return decodeIf(data)
	case kindWhile:
		return decodeWhile(data)
	case kindFor:
		return decodeFor(data)
	case kindAsyncFor:
		return decodeAsyncFor(data)
	case kindTry:
		return decodeTry(data)
	case kindWith:
		return decodeWith(data)
	case kindAsyncWith:
		return decodeAsyncWith(data)
	default:
		return nil, fmt.Errorf("ast: unrecognised statement kind %q", kind)
	}
}

// DecodeStmts decodes a JSON array of statement nodes.
func DecodeStmts(data []byte) ([]Stmt, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("ast: decode stmt list: %w", err)
	}
	out := make([]Stmt, 0, len(raws))
	for _, raw := range raws {
		s, err := DecodeStmt(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeModule decodes a top-level module payload.
func DecodeModule(data []byte) (*Module, error) {
	var aux struct {
		Pos
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("ast: decode module: %w", err)
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	return &Module{Pos: aux.Pos, Body: body}, nil
}

func encodeStmt(s Stmt) (json.RawMessage, error) {
	m, ok := s.(json.Marshaler)
	if !ok {
		return nil, fmt.Errorf("ast: statement %T does not implement json.Marshaler", s)
	}
	return m.MarshalJSON()
}

func encodeStmts(ss []Stmt) (json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(ss))
	for _, s := range ss {
		raw, err := encodeStmt(s)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

// --- Assert ---

func decodeAssert(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Test json.RawMessage `json:"test"`
		Msg  json.RawMessage `json:"msg"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	test, err := DecodeExpr(aux.Test)
	if err != nil {
		return nil, err
	}
	msg, err := DecodeExpr(aux.Msg)
	if err != nil {
		return nil, err
	}
	return &Assert{Pos: aux.Pos, Test: test, Msg: msg}, nil
}

func (a *Assert) MarshalJSON() ([]byte, error) {
	test, err := encodeExpr(a.Test)
	if err != nil {
		return nil, err
	}
	msg, err := encodeExpr(a.Msg)
	if err != nil {
		return nil, err
	}
	return withKind(kindAssert, struct {
		Pos
		Test json.RawMessage `json:"test"`
		Msg  json.RawMessage `json:"msg"`
	}{a.Pos, test, msg})
}

// --- Assign ---

func decodeAssign(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Targets json.RawMessage `json:"targets"`
		Value   json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	targets, err := DecodeExprs(aux.Targets)
	if err != nil {
		return nil, err
	}
	value, err := DecodeExpr(aux.Value)
	if err != nil {
		return nil, err
	}
	return &Assign{Pos: aux.Pos, Targets: targets, Value: value}, nil
}

func (a *Assign) MarshalJSON() ([]byte, error) {
	targets, err := encodeExprs(a.Targets)
	if err != nil {
		return nil, err
	}
	value, err := encodeExpr(a.Value)
	if err != nil {
		return nil, err
	}
	return withKind(kindAssign, struct {
		Pos
		Targets json.RawMessage `json:"targets"`
		Value   json.RawMessage `json:"value"`
	}{a.Pos, targets, value})
}

// --- AugAssign ---

func decodeAugAssign(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Target json.RawMessage `json:"target"`
		Op     string          `json:"op"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	target, err := DecodeExpr(aux.Target)
	if err != nil {
		return nil, err
	}
	value, err := DecodeExpr(aux.Value)
	if err != nil {
		return nil, err
	}
	return &AugAssign{Pos: aux.Pos, Target: target, Op: aux.Op, Value: value}, nil
}

func (a *AugAssign) MarshalJSON() ([]byte, error) {
	target, err := encodeExpr(a.Target)
	if err != nil {
		return nil, err
	}
	value, err := encodeExpr(a.Value)
	if err != nil {
		return nil, err
	}
	return withKind(kindAugAssign, struct {
		Pos
		Target json.RawMessage `json:"target"`
		Op     string          `json:"op"`
		Value  json.RawMessage `json:"value"`
	}{a.Pos, target, a.Op, value})
}

// --- AnnAssign ---

func decodeAnnAssign(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Target     json.RawMessage `json:"target"`
		Annotation json.RawMessage `json:"annotation"`
		Value      json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	target, err := DecodeExpr(aux.Target)
	if err != nil {
		return nil, err
	}
	annotation, err := DecodeExpr(aux.Annotation)
	if err != nil {
		return nil, err
	}
	value, err := DecodeExpr(aux.Value)
	if err != nil {
		return nil, err
	}
	return &AnnAssign{Pos: aux.Pos, Target: target, Annotation: annotation, Value: value}, nil
}

func (a *AnnAssign) MarshalJSON() ([]byte, error) {
	target, err := encodeExpr(a.Target)
	if err != nil {
		return nil, err
	}
	annotation, err := encodeExpr(a.Annotation)
	if err != nil {
		return nil, err
	}
	value, err := encodeExpr(a.Value)
	if err != nil {
		return nil, err
	}
	return withKind(kindAnnAssign, struct {
		Pos
		Target     json.RawMessage `json:"target"`
		Annotation json.RawMessage `json:"annotation"`
		Value      json.RawMessage `json:"value"`
	}{a.Pos, target, annotation, value})
}

// --- Delete ---

func decodeDelete(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Targets json.RawMessage `json:"targets"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	targets, err := DecodeExprs(aux.Targets)
	if err != nil {
		return nil, err
	}
	return &Delete{Pos: aux.Pos, Targets: targets}, nil
}

func (d *Delete) MarshalJSON() ([]byte, error) {
	targets, err := encodeExprs(d.Targets)
	if err != nil {
		return nil, err
	}
	return withKind(kindDelete, struct {
		Pos
		Targets json.RawMessage `json:"targets"`
	}{d.Pos, targets})
}

// --- ExprStmt ---

func decodeExprStmt(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	value, err := DecodeExpr(aux.Value)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: aux.Pos, Value: value}, nil
}

func (e *ExprStmt) MarshalJSON() ([]byte, error) {
	value, err := encodeExpr(e.Value)
	if err != nil {
		return nil, err
	}
	return withKind(kindExprStmt, struct {
		Pos
		Value json.RawMessage `json:"value"`
	}{e.Pos, value})
}

// --- Return ---

func decodeReturn(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	value, err := DecodeExpr(aux.Value)
	if err != nil {
		return nil, err
	}
	return &Return{Pos: aux.Pos, Value: value}, nil
}

func (r *Return) MarshalJSON() ([]byte, error) {
	value, err := encodeExpr(r.Value)
	if err != nil {
		return nil, err
	}
	return withKind(kindReturn, struct {
		Pos
		Value json.RawMessage `json:"value"`
	}{r.Pos, value})
}

// --- Raise ---

func decodeRaise(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Exc   json.RawMessage `json:"exc"`
		Cause json.RawMessage `json:"cause"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	exc, err := DecodeExpr(aux.Exc)
	if err != nil {
		return nil, err
	}
	cause, err := DecodeExpr(aux.Cause)
	if err != nil {
		return nil, err
	}
	return &Raise{Pos: aux.Pos, Exc: exc, Cause: cause}, nil
}

func (r *Raise) MarshalJSON() ([]byte, error) {
	exc, err := encodeExpr(r.Exc)
	if err != nil {
		return nil, err
	}
	cause, err := encodeExpr(r.Cause)
	if err != nil {
		return nil, err
	}
	return withKind(kindRaise, struct {
		Pos
		Exc   json.RawMessage `json:"exc"`
		Cause json.RawMessage `json:"cause"`
	}{r.Pos, exc, cause})
}

// --- FunctionDef / AsyncFunctionDef / ClassDef (identical shape) ---

func decodeFunctionDef(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Name string          `json:"name"`
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	return &FunctionDef{Pos: aux.Pos, Name: aux.Name, Body: body}, nil
}

func (f *FunctionDef) MarshalJSON() ([]byte, error) {
	body, err := encodeStmts(f.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindFunctionDef, struct {
		Pos
		Name string          `json:"name"`
		Body json.RawMessage `json:"body"`
	}{f.Pos, f.Name, body})
}

func decodeAsyncFunctionDef(data []byte) (Stmt, error) {
	s, err := decodeFunctionDef(data)
	if err != nil {
		return nil, err
	}
	fd := s.(*FunctionDef)
	return &AsyncFunctionDef{Pos: fd.Pos, Name: fd.Name, Body: fd.Body}, nil
}

func (f *AsyncFunctionDef) MarshalJSON() ([]byte, error) {
	body, err := encodeStmts(f.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindAsyncFunctionDef, struct {
		Pos
		Name string          `json:"name"`
		Body json.RawMessage `json:"body"`
	}{f.Pos, f.Name, body})
}

func decodeClassDef(data []byte) (Stmt, error) {
	s, err := decodeFunctionDef(data)
	if err != nil {
		return nil, err
	}
	fd := s.(*FunctionDef)
	return &ClassDef{Pos: fd.Pos, Name: fd.Name, Body: fd.Body}, nil
}

func (c *ClassDef) MarshalJSON() ([]byte, error) {
	body, err := encodeStmts(c.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindClassDef, struct {
		Pos
		Name string          `json:"name"`
		Body json.RawMessage `json:"body"`
	}{c.Pos, c.Name, body})
}

// --- If / While (identical shape) ---

func decodeIf(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Test   json.RawMessage `json:"test"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	test, err := DecodeExpr(aux.Test)
	if err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := DecodeStmts(aux.Orelse)
	if err != nil {
		return nil, err
	}
	return &If{Pos: aux.Pos, Test: test, Body: body, Orelse: orelse}, nil
}

func (i *If) MarshalJSON() ([]byte, error) {
	test, err := encodeExpr(i.Test)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(i.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := encodeStmts(i.Orelse)
	if err != nil {
		return nil, err
	}
	return withKind(kindIf, struct {
		Pos
		Test   json.RawMessage `json:"test"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}{i.Pos, test, body, orelse})
}

func decodeWhile(data []byte) (Stmt, error) {
	s, err := decodeIf(data)
	if err != nil {
		return nil, err
	}
	ifs := s.(*If)
	return &While{Pos: ifs.Pos, Test: ifs.Test, Body: ifs.Body, Orelse: ifs.Orelse}, nil
}

func (w *While) MarshalJSON() ([]byte, error) {
	test, err := encodeExpr(w.Test)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(w.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := encodeStmts(w.Orelse)
	if err != nil {
		return nil, err
	}
	return withKind(kindWhile, struct {
		Pos
		Test   json.RawMessage `json:"test"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}{w.Pos, test, body, orelse})
}

// --- For / AsyncFor (identical shape) ---

func decodeFor(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Target json.RawMessage `json:"target"`
		Iter   json.RawMessage `json:"iter"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	target, err := DecodeExpr(aux.Target)
	if err != nil {
		return nil, err
	}
	iter, err := DecodeExpr(aux.Iter)
	if err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := DecodeStmts(aux.Orelse)
	if err != nil {
		return nil, err
	}
	return &For{Pos: aux.Pos, Target: target, Iter: iter, Body: body, Orelse: orelse}, nil
}

func (f *For) MarshalJSON() ([]byte, error) {
	target, err := encodeExpr(f.Target)
	if err != nil {
		return nil, err
	}
	iter, err := encodeExpr(f.Iter)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(f.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := encodeStmts(f.Orelse)
	if err != nil {
		return nil, err
	}
	return withKind(kindFor, struct {
		Pos
		Target json.RawMessage `json:"target"`
		Iter   json.RawMessage `json:"iter"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}{f.Pos, target, iter, body, orelse})
}

func decodeAsyncFor(data []byte) (Stmt, error) {
	s, err := decodeFor(data)
	if err != nil {
		return nil, err
	}
	f := s.(*For)
	return &AsyncFor{Pos: f.Pos, Target: f.Target, Iter: f.Iter, Body: f.Body, Orelse: f.Orelse}, nil
}

func (f *AsyncFor) MarshalJSON() ([]byte, error) {
	target, err := encodeExpr(f.Target)
	if err != nil {
		return nil, err
	}
	iter, err := encodeExpr(f.Iter)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(f.Body)
	if err != nil {
		return nil, err
	}
	orelse, err := encodeStmts(f.Orelse)
	if err != nil {
		return nil, err
	}
	return withKind(kindAsyncFor, struct {
		Pos
		Target json.RawMessage `json:"target"`
		Iter   json.RawMessage `json:"iter"`
		Body   json.RawMessage `json:"body"`
		Orelse json.RawMessage `json:"orelse"`
	}{f.Pos, target, iter, body, orelse})
}

// --- Try / ExceptHandler ---

type exceptHandlerAux struct {
	Pos
	Type json.RawMessage `json:"type"`
	Name string          `json:"name,omitempty"`
	Body json.RawMessage `json:"body"`
}

func decodeExceptHandler(data []byte) (*ExceptHandler, error) {
	var aux exceptHandlerAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	typ, err := DecodeExpr(aux.Type)
	if err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	return &ExceptHandler{Pos: aux.Pos, Type: typ, Name: aux.Name, Body: body}, nil
}

func (h *ExceptHandler) MarshalJSON() ([]byte, error) {
	typ, err := encodeExpr(h.Type)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(h.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exceptHandlerAux{h.Pos, typ, h.Name, body})
}

func decodeHandlers(data []byte) ([]*ExceptHandler, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]*ExceptHandler, 0, len(raws))
	for _, raw := range raws {
		h, err := decodeExceptHandler(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func encodeHandlers(hs []*ExceptHandler) (json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(hs))
	for _, h := range hs {
		raw, err := h.MarshalJSON()
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

func decodeTry(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Body      json.RawMessage `json:"body"`
		Handlers  json.RawMessage `json:"handlers"`
		Orelse    json.RawMessage `json:"orelse"`
		Finalbody json.RawMessage `json:"finalbody"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	handlers, err := decodeHandlers(aux.Handlers)
	if err != nil {
		return nil, err
	}
	orelse, err := DecodeStmts(aux.Orelse)
	if err != nil {
		return nil, err
	}
	finalbody, err := DecodeStmts(aux.Finalbody)
	if err != nil {
		return nil, err
	}
	return &Try{Pos: aux.Pos, Body: body, Handlers: handlers, Orelse: orelse, Finalbody: finalbody}, nil
}

func (t *Try) MarshalJSON() ([]byte, error) {
	body, err := encodeStmts(t.Body)
	if err != nil {
		return nil, err
	}
	handlers, err := encodeHandlers(t.Handlers)
	if err != nil {
		return nil, err
	}
	orelse, err := encodeStmts(t.Orelse)
	if err != nil {
		return nil, err
	}
	finalbody, err := encodeStmts(t.Finalbody)
	if err != nil {
		return nil, err
	}
	return withKind(kindTry, struct {
		Pos
		Body      json.RawMessage `json:"body"`
		Handlers  json.RawMessage `json:"handlers"`
		Orelse    json.RawMessage `json:"orelse"`
		Finalbody json.RawMessage `json:"finalbody"`
	}{t.Pos, body, handlers, orelse, finalbody})
}

// --- With / AsyncWith / WithItem ---

type withItemAux struct {
	ContextExpr  json.RawMessage `json:"context_expr"`
	OptionalVars json.RawMessage `json:"optional_vars"`
}

func decodeWithItem(data []byte) (*WithItem, error) {
	var aux withItemAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	ctx, err := DecodeExpr(aux.ContextExpr)
	if err != nil {
		return nil, err
	}
	vars, err := DecodeExpr(aux.OptionalVars)
	if err != nil {
		return nil, err
	}
	return &WithItem{ContextExpr: ctx, OptionalVars: vars}, nil
}

func (w *WithItem) MarshalJSON() ([]byte, error) {
	ctx, err := encodeExpr(w.ContextExpr)
	if err != nil {
		return nil, err
	}
	vars, err := encodeExpr(w.OptionalVars)
	if err != nil {
		return nil, err
	}
	return json.Marshal(withItemAux{ctx, vars})
}

func decodeWithItems(data []byte) ([]*WithItem, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]*WithItem, 0, len(raws))
	for _, raw := range raws {
		it, err := decodeWithItem(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func encodeWithItems(items []*WithItem) (json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		raw, err := it.MarshalJSON()
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

func decodeWith(data []byte) (Stmt, error) {
	var aux struct {
		Pos
		Items json.RawMessage `json:"items"`
		Body  json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	items, err := decodeWithItems(aux.Items)
	if err != nil {
		return nil, err
	}
	body, err := DecodeStmts(aux.Body)
	if err != nil {
		return nil, err
	}
	return &With{Pos: aux.Pos, Items: items, Body: body}, nil
}

func (w *With) MarshalJSON() ([]byte, error) {
	items, err := encodeWithItems(w.Items)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(w.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindWith, struct {
		Pos
		Items json.RawMessage `json:"items"`
		Body  json.RawMessage `json:"body"`
	}{w.Pos, items, body})
}

func decodeAsyncWith(data []byte) (Stmt, error) {
	s, err := decodeWith(data)
	if err != nil {
		return nil, err
	}
	w := s.(*With)
	return &AsyncWith{Pos: w.Pos, Items: w.Items, Body: w.Body}, nil
}

func (w *AsyncWith) MarshalJSON() ([]byte, error) {
	items, err := encodeWithItems(w.Items)
	if err != nil {
		return nil, err
	}
	body, err := encodeStmts(w.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindAsyncWith, struct {
		Pos
		Items json.RawMessage `json:"items"`
		Body  json.RawMessage `json:"body"`
	}{w.Pos, items, body})
}

// --- Module ---

func (m *Module) MarshalJSON() ([]byte, error) {
	body, err := encodeStmts(m.Body)
	if err != nil {
		return nil, err
	}
	return withKind(kindModule, struct {
		Pos
		Body json.RawMessage `json:"body"`
	}{m.Pos, body})
}

// --- leaf statement kinds need MarshalJSON too, for round-tripping. ---

func (p *Pass) MarshalJSON() ([]byte, error) {
	return withKind(kindPass, struct{ Pos }{p.Pos})
}

func (g *Global) MarshalJSON() ([]byte, error) {
	return withKind(kindGlobal, struct {
		Pos
		Names []string `json:"names"`
	}{g.Pos, g.Names})
}

func (n *Nonlocal) MarshalJSON() ([]byte, error) {
	return withKind(kindNonlocal, struct {
		Pos
		Names []string `json:"names"`
	}{n.Pos, n.Names})
}

func (b *Break) MarshalJSON() ([]byte, error) {
	return withKind(kindBreak, struct{ Pos }{b.Pos})
}

func (c *Continue) MarshalJSON() ([]byte, error) {
	return withKind(kindContinue, struct{ Pos }{c.Pos})
}

func (i *Import) MarshalJSON() ([]byte, error) {
	return withKind(kindImport, struct {
		Pos
		Names []string `json:"names"`
	}{i.Pos, i.Names})
}

func (i *ImportFrom) MarshalJSON() ([]byte, error) {
	return withKind(kindImportFrom, struct {
		Pos
		Module string   `json:"module"`
		Names  []string `json:"names"`
	}{i.Pos, i.Module, i.Names})
}

// --- leaf expression kinds likewise need "kind" injected on marshal. ---

func (o *Opaque) MarshalJSON() ([]byte, error) {
	return withKind(kindOpaque, struct {
		Pos
		Kind string `json:"opaque_kind,omitempty"`
	}{o.Pos, o.Kind})
}

func (s *StringLit) MarshalJSON() ([]byte, error) {
	return withKind(kindStringLit, struct {
		Pos
		Value string `json:"value"`
	}{s.Pos, s.Value})
}

func (b *BytesLit) MarshalJSON() ([]byte, error) {
	return withKind(kindBytesLit, struct {
		Pos
		Value []byte `json:"value"`
	}{b.Pos, b.Value})
}

func (n *IntLit) MarshalJSON() ([]byte, error) {
	return withKind(kindIntLit, struct {
		Pos
		Value int64 `json:"value"`
	}{n.Pos, n.Value})
}

func (f *FloatLit) MarshalJSON() ([]byte, error) {
	return withKind(kindFloatLit, struct {
		Pos
		Value float64 `json:"value"`
	}{f.Pos, f.Value})
}

func (c *ComplexLit) MarshalJSON() ([]byte, error) {
	return withKind(kindComplexLit, struct {
		Pos
		Real float64 `json:"real"`
		Imag float64 `json:"imag"`
	}{c.Pos, c.Real, c.Imag})
}

func (e *EllipsisLit) MarshalJSON() ([]byte, error) {
	return withKind(kindEllipsisLit, struct{ Pos }{e.Pos})
}

func (n *NameConstant) MarshalJSON() ([]byte, error) {
	return withKind(kindNameConstant, struct {
		Pos
		Kind NameConstantKind `json:"name"`
	}{n.Pos, n.Kind})
}

func (c *ConstantLit) MarshalJSON() ([]byte, error) {
	return withKind(kindConstantLit, struct {
		Pos
		Value any `json:"value"`
	}{c.Pos, c.Value})
}
