package cfa

import "github.com/katalvlaran/cfa/graph"

// contextLabel names one of the five context roles a statement can consult
// while it is being analysed.
type contextLabel string

const (
	ctxBreak    contextLabel = "break"
	ctxContinue contextLabel = "continue"
	ctxRaise    contextLabel = "raise"
	ctxLeave    contextLabel = "leave"
	ctxReturn   contextLabel = "return"
)

// withContext temporarily installs updates into a.ctx for the duration of
// fn, restoring whatever was there before (or removing the key entirely if
// it was previously unset) once fn returns. Scoped, stack-like save/restore
// is what makes nested loops and try blocks compose: each construct sees
// only the targets its enclosing constructs left in scope.
func (a *analyser) withContext(updates map[contextLabel]*graph.Node, fn func()) {
	saved := make(map[contextLabel]*graph.Node, len(updates))
	hadSaved := make(map[contextLabel]bool, len(updates))
	for label := range updates {
		if prev, ok := a.ctx[label]; ok {
			saved[label] = prev
			hadSaved[label] = true
		}
	}
	for label, node := range updates {
		a.ctx[label] = node
	}
	defer func() {
		for label := range updates {
			if hadSaved[label] {
				a.ctx[label] = saved[label]
			} else {
				delete(a.ctx, label)
			}
		}
	}()
	fn()
}

// mustContext looks up a context role, panicking with a *contextError if
// the role is not currently in scope. A missing role means the input AST
// was malformed (break outside a loop, return outside a function); the
// Analyse* entry points recover the panic into a returned error.
func (a *analyser) mustContext(label contextLabel) *graph.Node {
	n, ok := a.ctx[label]
	if !ok {
		panic(&contextError{role: string(label)})
	}
	return n
}

func (a *analyser) raiseTarget() *graph.Node    { return a.mustContext(ctxRaise) }
func (a *analyser) breakTarget() *graph.Node    { return a.mustContext(ctxBreak) }
func (a *analyser) continueTarget() *graph.Node { return a.mustContext(ctxContinue) }
func (a *analyser) leaveTarget() *graph.Node    { return a.mustContext(ctxLeave) }
func (a *analyser) returnTarget() *graph.Node   { return a.mustContext(ctxReturn) }
