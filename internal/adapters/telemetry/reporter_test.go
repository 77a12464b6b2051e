package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/pict/internal/adapters/telemetry"
	"go.trai.ch/pict/internal/core/domain"
)

func TestReporter_RecordsBothOutcomes(t *testing.T) {
	tape := progrock.NewTape()
	r := telemetry.NewReporter(tape)

	r.Asset(domain.AssetReport{
		Output:  "_assets/hero_100.webp",
		Result:  domain.Generated{SizeBefore: 4096, SizeAfter: 1024},
		Digest:  "00000000075bcd15",
		Elapsed: 12 * time.Millisecond,
	})
	r.Asset(domain.AssetReport{
		Output:  "_assets/hero_200.webp",
		Result:  domain.Reused{},
		Elapsed: time.Millisecond,
	})

	require.NoError(t, r.Close())
}

func TestNoop(t *testing.T) {
	var r telemetry.Noop
	r.Asset(domain.AssetReport{Output: "x", Result: domain.Reused{}})
	require.NoError(t, r.Close())
}
