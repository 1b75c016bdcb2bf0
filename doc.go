// Package cfa is an intra-procedural control-flow analyser: feed it the
// AST of a function, coroutine, class body or module, get back a labelled
// control-flow graph.
//
// 🚀 What is cfa?
//
//	A small, thread-aware library that turns statements into a graph:
//
//	  • One node per reachable statement, one labelled edge per possible
//	    transfer of control (next / error / enter / else)
//	  • Faithful try/except/else/finally semantics — a finally's
//	    break/continue/return overrides whatever was pending
//	  • Constant folding for syntactically obvious if/while/assert tests
//
// ✨ Why choose cfa?
//
//   - Honest graphs          — dead branches stay in the graph, labelled
//   - Rock-solid             — finished analyses are safe for concurrent reads
//   - Consumer-friendly      — unreachable-code and redundant-return
//     checkers need nothing but the Analysis
//   - Pure Go library core   — the CLI carries the third-party surface
//
// Everything is organized under four subpackages and one command:
//
//	graph/      — labelled directed multigraph: AddNode, RemoveNode, CollapseNode
//	ast/        — the closed statement/expression node set, with JSON fixtures
//	cfa/        — the analyser: context-threaded, right-to-left construction
//	lint/       — an illustrative redundant-return checker built on Analysis
//	cmd/cfadump — dump a fixture's graph as text or JSON, or run the lint
//
// Quick ASCII example:
//
//	    while ──enter──▶ body
//	      ▲                │
//	      └─────next───────┘
//
//	a loop's body closes back onto the loop node itself; the cycle is
//	created by collapsing a placeholder onto the loop node once it exists.
//
//	go get github.com/katalvlaran/cfa
package cfa
