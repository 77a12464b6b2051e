package domain

// GenerationResult is the outcome of one job: either a valid cache entry
// was reused, or the artifact was freshly generated. It is a closed sum;
// the two implementations below are the only ones.
type GenerationResult interface {
	generationResult()
}

// Reused indicates the artifact was copied from a valid cache entry.
type Reused struct{}

func (Reused) generationResult() {}

// Generated indicates the transform capability produced fresh bytes.
type Generated struct {
	// SizeBefore is the loaded source size in bytes.
	SizeBefore int64
	// SizeAfter is the transformed artifact size in bytes.
	SizeAfter int64
}

func (Generated) generationResult() {}
