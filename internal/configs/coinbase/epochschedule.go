package coinbaseconfig

import (
	"sort"

	"github.com/pkg/errors"
)

// Upgrade activates an instance from the given epoch on.
type Upgrade struct {
	Epoch    uint64
	Instance Instance
}

type epochSchedule struct {
	upgrades []Upgrade
}

// NewEpochSchedule returns a schedule switching instances at the given
// epochs. One upgrade must start at epoch 0 and epochs must be unique.
func NewEpochSchedule(upgrades ...Upgrade) (Schedule, error) {
	if len(upgrades) == 0 {
		return nil, errors.New("schedule needs at least one instance")
	}
	sorted := append([]Upgrade{}, upgrades...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Epoch < sorted[j].Epoch
	})
	if sorted[0].Epoch != 0 {
		return nil, errors.Errorf("first instance starts at epoch %d, want 0", sorted[0].Epoch)
	}
	for i := range sorted {
		if sorted[i].Instance == nil {
			return nil, errors.Errorf("nil instance for epoch %d", sorted[i].Epoch)
		}
		if i > 0 && sorted[i].Epoch == sorted[i-1].Epoch {
			return nil, errors.Errorf("duplicate instance for epoch %d", sorted[i].Epoch)
		}
	}
	return epochSchedule{upgrades: sorted}, nil
}

func (s epochSchedule) InstanceForEpoch(epoch uint64) Instance {
	idx := sort.Search(len(s.upgrades), func(i int) bool {
		return s.upgrades[i].Epoch > epoch
	})
	return s.upgrades[idx-1].Instance
}
