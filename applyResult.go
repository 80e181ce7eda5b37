package postgres

type ApplyKind string

const (
	ApplyKindRole ApplyKind = "role"
	ApplyKindSlot ApplyKind = "slot"
)

type ApplyState int

const (
	ApplyStateCreated ApplyState = iota
	ApplyStateAlreadyExists
	ApplyStateFailed
)

func (s ApplyState) String() string {
	switch s {
	case ApplyStateCreated:
		return "created"
	case ApplyStateAlreadyExists:
		return "already-exists"
	case ApplyStateFailed:
		return "failed"
	}
	return ""
}

type ApplyStatus struct {
	Kind  ApplyKind
	Name  string
	State ApplyState
	Err   error

	// ConsistentPoint is set for slots in ApplyStateCreated.
	ConsistentPoint LSN
	// GeneratedPassword is set for roles whose source requested generation.
	GeneratedPassword string
}

type ApplyResult struct {
	Roles []ApplyStatus
	Slots []ApplyStatus
}

func (r *ApplyResult) Failed() []ApplyStatus {
	var failed []ApplyStatus
	for _, status := range r.Roles {
		if status.State == ApplyStateFailed {
			failed = append(failed, status)
		}
	}
	for _, status := range r.Slots {
		if status.State == ApplyStateFailed {
			failed = append(failed, status)
		}
	}
	return failed
}
