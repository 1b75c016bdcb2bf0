// Package ast defines the closed set of statement and expression node kinds
// that package cfa knows how to analyse.
//
// No source text is parsed anywhere in this module, so this package also
// plays the role an external parser would: a small, closed interface
// hierarchy with JSON encode/decode support so a caller (or cmd/cfadump)
// can load a tree from a JSON fixture without a bespoke parser.
//
// Every Stmt and Expr implementation carries a Line() int for diagnostics;
// nothing else about source positions is modelled.
package ast
