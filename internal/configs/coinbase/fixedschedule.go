package coinbaseconfig

type fixedSchedule struct {
	instance Instance
}

// InstanceForEpoch returns the fixed reward configuration instance regardless
// the given epoch.
func (s fixedSchedule) InstanceForEpoch(epoch uint64) Instance {
	return s.instance
}

// NewFixedSchedule returns a reward configuration schedule that uses the
// given config instance for all epochs.  Useful for testing.
func NewFixedSchedule(instance Instance) Schedule {
	return fixedSchedule{instance: instance}
}
