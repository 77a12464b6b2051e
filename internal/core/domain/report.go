package domain

import "time"

// AssetReport is the observability record emitted once per job. It is
// consumed only by the reporter; nothing on the critical path reads it.
type AssetReport struct {
	Output  string
	Result  GenerationResult
	Digest  string
	Elapsed time.Duration
}
