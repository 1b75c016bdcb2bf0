package graph

// Label identifies the kind of control-flow transfer an edge represents.
type Label string

// The four edge labels the control-flow analyser ever emits. A node may
// carry at most one out-edge per label.
const (
	// Next links to the following statement on normal completion.
	Next Label = "next"
	// Error links to the handler reached when the statement raises.
	Error Label = "error"
	// Enter links into the body of an if/for/while/except/with block.
	Enter Label = "enter"
	// Else links to the branch taken when a condition does not apply.
	Else Label = "else"
)

// Node is a single point in the control-flow graph. It is an identity
// token: two distinct *Node values are never considered equal even if their
// payloads match, and a Node carries no edge information of its own — all
// structure lives in the owning Graph.
//
// A Node carries at most one of ASTRef (a back-reference to the statement
// or sub-expression it represents) or Annotation (a short synthetic-node
// label such as "<start>", "<leave>", "<raise>", "<return>"); a node with
// neither set is the zero-information case used only by dummy nodes created
// for later collapse.
type Node struct {
	// ASTRef is the originating AST statement (or, for exception-handler
	// match nodes, the handler's type expression). Nil for synthetic nodes.
	ASTRef any
	// Annotation names a synthetic node's role. Empty for AST-backed nodes.
	Annotation string
}

// NewNode returns a plain dummy node: no AST reference, no annotation. The
// caller is responsible for adding it to a Graph.
func NewNode() *Node {
	return &Node{}
}

// NewASTNode returns a node wrapping the given AST back-reference.
func NewASTNode(astRef any) *Node {
	return &Node{ASTRef: astRef}
}

// NewAnnotatedNode returns a node carrying the given synthetic annotation.
func NewAnnotatedNode(annotation string) *Node {
	return &Node{Annotation: annotation}
}

// IsSynthetic reports whether this node has no AST back-reference — i.e. it
// is either an annotated synthetic node or a not-yet-collapsed dummy.
func (n *Node) IsSynthetic() bool {
	return n.ASTRef == nil
}
