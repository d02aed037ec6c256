package types

// ChangeLog receives one human-readable line per inventory mutation.
// Implementations report their own write failures; a failed record never
// aborts the operation that produced it.
type ChangeLog interface {
	Record(message string)
}

// NopChangeLog discards every record.
type NopChangeLog struct{}

// Record implements ChangeLog.
func (NopChangeLog) Record(string) {}
