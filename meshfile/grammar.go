// Package meshfile implements a small text mesh format and parser,
// feeding a free-form (non-grid) mesh into ctree.Init. The format:
//
//	VERTEX <id> <value>
//	EDGE <a> <b>
//
// one statement per line (commas between statements are also accepted).
// Vertex ids must form a dense range [0, numVerts).
package meshfile

import "github.com/alecthomas/participle"

// vertexStmt declares a vertex's scalar value.
//
// The value must accept both Int and Float tokens: participle's default
// text/scanner lexer tokenizes a bare integer like "0" as an Int, not a
// Float, so a whole-number value (very common in hand-written mesh
// files) would otherwise fail to parse.
type vertexStmt struct {
	ID    int     `"VERTEX" @Int`
	Value float64 `@(Float|Int)`
}

// edgeStmt declares an undirected adjacency between two vertices.
type edgeStmt struct {
	A int `"EDGE" @Int`
	B int `@Int`
}

type statement struct {
	Vertex *vertexStmt `( @@`
	Edge   *edgeStmt   `| @@ )`
}

type meshFile struct {
	Statements []*statement `( @@ ","? )*`
}

// grammar is built once, the same way lib/parser.go builds its ParseGraph
// grammar: a single package-level participle.Parser reused across calls.
var grammar = participle.MustBuild(&meshFile{}, participle.UseLookahead(1))
