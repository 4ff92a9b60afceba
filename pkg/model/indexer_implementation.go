package model

type indexerImplementation struct {
	vertices int64
	rounds   int64
}

func (indexer *indexerImplementation) Index(kind variableKind, vertex, round int) int64 {
	return int64(vertex) + indexer.vertices*int64(round) + indexer.vertices*indexer.rounds*int64(kind) + 1
}

func (indexer *indexerImplementation) Attributes(index int64) (kind variableKind, vertex int, round int) {
	index = index - 1
	vertex = int(index % indexer.vertices)
	index = index / indexer.vertices

	round = int(index % indexer.rounds)
	index = index / indexer.rounds

	kind = variableKind(index)

	return kind, vertex, round
}

func (indexer *indexerImplementation) Variables() uint64 {
	return uint64(indexer.vertices * indexer.rounds * variableKinds)
}
