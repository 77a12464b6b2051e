package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateOutput is returned when a transform spec reuses an
	// output identity that is already registered.
	ErrDuplicateOutput = zerr.New("duplicate output identity")

	// ErrCorruptCache is returned when a cache entry exists but cannot be
	// parsed or is structurally invalid. It is deliberately distinct from
	// a miss: a corrupt entry fails the asset rather than silently
	// regenerating it.
	ErrCorruptCache = zerr.New("corrupt cache entry")

	// ErrSourceLoad is returned when a source's bytes could not be read
	// or fetched. Every transform of that source fails with it.
	ErrSourceLoad = zerr.New("source load failed")

	// ErrGenerationFailed is returned by the scheduler when at least one
	// job failed; artifacts for succeeding jobs are left in place.
	ErrGenerationFailed = zerr.New("asset generation failed")
)
