package postgres

import "github.com/jackc/pglogrepl"

type SlotOptions []SlotOption

func ConfigureSlotOptions() SlotOptions {
	return SlotOptions(nil)
}

func (opt SlotOptions) WithTemporary() SlotOptions {
	return append(opt, WithTemporary())
}

func (opt SlotOptions) WithSnapshotAction(action string) SlotOptions {
	return append(opt, WithSnapshotAction(action))
}

func (opt SlotOptions) WithSlotType(mode pglogrepl.ReplicationMode) SlotOptions {
	return append(opt, WithSlotType(mode))
}
