package merge

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
)

// branchEvents строит правки устройства device поверх общей базы: создания
// контактов и переименования общей организации с частыми совпадениями timestamp.
func branchEvents(device string, seeds []int) []models.Event {
	events := make([]models.Event, 0, len(seeds))
	for i, seed := range seeds {
		ts := fmt.Sprintf("2024-05-01T10:00:%02dZ", seed%4)
		id := fmt.Sprintf("evt-%d-%d", 500+seed%3, i)
		if seed%2 == 0 {
			events = append(events, event(id, ts, device, models.OrganizationUpdated, "org-1",
				fmt.Sprintf(`{"name":"%s-%d"}`, device, seed)))
			continue
		}
		events = append(events, event(id, ts, device, models.ContactCreated,
			fmt.Sprintf("c-%d", seed%5), fmt.Sprintf(`{"name":"%s"}`, device)))
	}
	return events
}

func TestMergeLawsProperties(t *testing.T) {
	registry, err := reducer.Default()
	if err != nil {
		t.Fatal(err)
	}
	adapter := NewReplayAdapter(registry)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	seeds := gen.SliceOfN(6, gen.IntRange(0, 40))

	replica := func(device string, s []int) *Replica {
		r, err := adapter.Replica(append(baseEvents(), branchEvents(device, s)...))
		if err != nil {
			t.Fatal(err)
		}
		return r
	}

	properties.Property("merge laws hold for diverged replicas", prop.ForAll(
		func(sa, sb, sc []int) bool {
			return CheckLaws(adapter, replica("d1", sa), replica("d2", sb), replica("d3", sc)) == nil
		},
		seeds, seeds, seeds,
	))

	properties.Property("both merge directions converge", prop.ForAll(
		func(sa, sb []int) bool {
			div, err := SimulateDivergence(adapter, baseEvents(), branchEvents("d1", sa), branchEvents("d2", sb))
			if err != nil {
				return false
			}
			ok, err := div.Converged()
			return err == nil && ok
		},
		seeds, seeds,
	))

	properties.TestingRun(t)
}
