package health

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imexspec/internal/norms"
	"imexspec/pkg/platform/audit"
)

func newService(store PackStore, threshold int) *Service {
	return NewService(store, nil, slog.New(slog.DiscardHandler), threshold)
}

func TestCheckHealthySystem(t *testing.T) {
	svc := newService(norms.NewInMemoryStore(), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	assert.Equal(t, "Sistema operacional", report.Message)
	assert.Equal(t, "2025.1", report.PackVersion)
	assert.True(t, svc.WritesAllowed())
}

func TestCheckNoActivePack(t *testing.T) {
	svc := newService(norms.NewInMemoryStoreWithPacks(), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusBlocked, report.Status)
	assert.False(t, svc.WritesAllowed(), "blocked system refuses writes")
}

func TestCheckMultipleActivePacks(t *testing.T) {
	a := starterLikePack("2025.1")
	b := starterLikePack("2025.2")
	svc := newService(norms.NewInMemoryStoreWithPacks(a, b), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusBlocked, report.Status)
	assert.Contains(t, report.Message, "Múltiplas")
}

func TestCheckInsufficientNorms(t *testing.T) {
	pack := starterLikePack("2025.1")
	pack.Norms = map[string]norms.Norm{
		"API_6D": {Code: "API_6D", ValveTypes: []string{"ESFERA"}},
	}
	svc := newService(norms.NewInMemoryStoreWithPacks(pack), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusBlocked, report.Status)
	assert.Contains(t, report.Message, "insuficiente")
}

func TestCheckEmptyDomainBlocks(t *testing.T) {
	pack := starterLikePack("2025.1")
	broken := pack.Norms["API_6D"]
	broken.Domains = map[string][]string{"MATERIAL_CORPO": {}}
	pack.Norms["API_6D"] = broken
	svc := newService(norms.NewInMemoryStoreWithPacks(pack), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusBlocked, report.Status)
	assert.Contains(t, report.Message, "incompletos")
	assert.NotEmpty(t, report.Issues)
}

func TestCheckMissingValveTypesDegrades(t *testing.T) {
	pack := starterLikePack("2025.1")
	broken := pack.Norms["API_6D"]
	broken.ValveTypes = nil
	pack.Norms["API_6D"] = broken
	svc := newService(norms.NewInMemoryStoreWithPacks(pack), 1)

	report := svc.Check(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.True(t, svc.WritesAllowed(), "degraded still accepts writes")
}

func TestBreakerThresholdAndRecovery(t *testing.T) {
	store := norms.NewInMemoryStoreWithPacks()
	svc := NewService(store, nil, slog.New(slog.DiscardHandler), 2)
	ctx := context.Background()

	svc.Check(ctx)
	assert.True(t, svc.WritesAllowed(), "one failure below threshold keeps the breaker closed")

	svc.Check(ctx)
	assert.False(t, svc.WritesAllowed(), "threshold reached opens the breaker")

	store.Activate(starterLikePack("2025.3"))
	report := svc.Check(ctx)
	assert.Equal(t, StatusHealthy, report.Status)
	assert.True(t, svc.WritesAllowed(), "healthy evaluation closes the breaker")
}

func TestTransitionsAreLogged(t *testing.T) {
	log := audit.NewInMemoryStore()
	recorder := audit.NewRecorder(log, nil, slog.New(slog.DiscardHandler))
	svc := NewService(norms.NewInMemoryStoreWithPacks(), recorder, slog.New(slog.DiscardHandler), 1)

	svc.Check(context.Background())

	events, err := log.ListBySubject(context.Background(), "norm-system", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.KindHealthTransition, events[0].Kind)
	assert.Equal(t, "opened", events[0].Outcome)
}

func TestLatestReusesLastReport(t *testing.T) {
	svc := newService(norms.NewInMemoryStore(), 1)
	ctx := context.Background()

	first := svc.Check(ctx)
	latest := svc.Latest(ctx)

	assert.Equal(t, first.CheckedAt, latest.CheckedAt)
}

// starterLikePack builds a minimal ACTIVE pack that satisfies every gate.
func starterLikePack(version string) norms.Pack {
	mk := func(code string) norms.Norm {
		return norms.Norm{
			Code:       code,
			ValveTypes: []string{"ESFERA"},
			Domains:    map[string][]string{"MATERIAL_CORPO": {"ASTM_A216_WCB"}},
		}
	}
	return norms.Pack{
		Version: version,
		Status:  "ACTIVE",
		Norms: map[string]norms.Norm{
			"A": mk("A"), "B": mk("B"), "C": mk("C"), "D": mk("D"), "E": mk("E"),
		},
		SystemRequirements: norms.SystemRequirements{
			MinNormsForOperation:       5,
			RequiredDomainCompleteness: 100,
			AutoBlockThreshold:         3,
		},
	}
}
