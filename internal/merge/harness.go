package merge

import (
	"fmt"
	"slices"

	"github.com/iudanet/crmsync/internal/models"
)

// Divergence is the outcome of two devices editing offline from a shared base
type Divergence struct {
	Left          *Replica
	Right         *Replica
	LeftIntoRight *Replica
	RightIntoLeft *Replica
}

// Converged reports whether both merge directions produced the same document
func (d *Divergence) Converged() (bool, error) {
	return sameReplica(d.LeftIntoRight, d.RightIntoLeft)
}

// SimulateDivergence forks base into two replicas, applies left and right to
// them independently and merges the results in both directions.
func SimulateDivergence(adapter Adapter, base, left, right []models.Event) (*Divergence, error) {
	origin, err := adapter.Replica(base)
	if err != nil {
		return nil, fmt.Errorf("base replica: %w", err)
	}

	l, err := extend(adapter, adapter.Clone(origin), left)
	if err != nil {
		return nil, fmt.Errorf("left replica: %w", err)
	}
	r, err := extend(adapter, adapter.Clone(origin), right)
	if err != nil {
		return nil, fmt.Errorf("right replica: %w", err)
	}

	lr, err := adapter.Merge(r, l)
	if err != nil {
		return nil, fmt.Errorf("merge left into right: %w", err)
	}
	rl, err := adapter.Merge(l, r)
	if err != nil {
		return nil, fmt.Errorf("merge right into left: %w", err)
	}

	return &Divergence{
		Left:          l,
		Right:         r,
		LeftIntoRight: lr,
		RightIntoLeft: rl,
	}, nil
}

func extend(adapter Adapter, base *Replica, events []models.Event) (*Replica, error) {
	if len(events) == 0 {
		return base, nil
	}
	delta, err := adapter.Replica(events)
	if err != nil {
		return nil, err
	}
	return adapter.Merge(base, delta)
}

// CheckLaws verifies commutativity, associativity and idempotence of adapter on
// the given replicas. A violation wraps ErrLawViolated.
func CheckLaws(adapter Adapter, a, b, c *Replica) error {
	ab, err := adapter.Merge(a, b)
	if err != nil {
		return err
	}
	ba, err := adapter.Merge(b, a)
	if err != nil {
		return err
	}
	if err := expectSame("commutativity", ab, ba); err != nil {
		return err
	}

	bc, err := adapter.Merge(b, c)
	if err != nil {
		return err
	}
	abC, err := adapter.Merge(ab, c)
	if err != nil {
		return err
	}
	aBC, err := adapter.Merge(a, bc)
	if err != nil {
		return err
	}
	if err := expectSame("associativity", abC, aBC); err != nil {
		return err
	}

	aa, err := adapter.Merge(a, a)
	if err != nil {
		return err
	}
	return expectSame("idempotence", aa, a)
}

func expectSame(law string, x, y *Replica) error {
	same, err := sameReplica(x, y)
	if err != nil {
		return err
	}
	if !same {
		return fmt.Errorf("%w: %s", ErrLawViolated, law)
	}
	return nil
}

func sameReplica(x, y *Replica) (bool, error) {
	hx, err := x.Hash()
	if err != nil {
		return false, err
	}
	hy, err := y.Hash()
	if err != nil {
		return false, err
	}
	return hx == hy && slices.Equal(x.Keys(), y.Keys()), nil
}
