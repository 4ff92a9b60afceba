package model

type variableKind uint64

const (
	burnedVariable   variableKind = iota // b(v, t): v is burning at the end of round t
	defendedVariable                     // d(v, t): v is defended at the end of round t
	placedVariable                       // p(v, t): v is placed in round t
	shieldedVariable                     // s(v, t): v is defended right after the placement of round t

	variableKinds = 4
)

// indexer interface is design to give a unique index to a combination of a game variable's attributes and vice versa
type indexer interface {
	// Returns a unique index to a combination of game variable's attributes
	Index(kind variableKind, vertex, round int) int64
	// Returns a combination of game variable's attributes from a unique index
	Attributes(index int64) (kind variableKind, vertex int, round int)
	// Returns the amount of game variables, the largest index handed out
	Variables() uint64
}

func newIndexer(vertices, rounds int) indexer {
	return &indexerImplementation{
		vertices: int64(vertices),
		rounds:   int64(rounds) + 1, // Rounds 0..T
	}
}
