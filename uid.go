package adt

import (
	"fmt"
	"os"
)

// uidTracker tracks the maximum placement UniqueID seen across a world's
// MDDF and MODF entries, per §6's "auxiliary output: uid.ini."
type uidTracker struct {
	max  uint32
	seen bool
}

func (t *uidTracker) observe(id uint32) {
	if !t.seen || id > t.max {
		t.max = id
		t.seen = true
	}
}

// WriteUIDIni writes a one-line "max_unique_id=<N>" file to path, per §6.
// Returns nil without writing if no placement was ever observed (a world
// with no placements emits no auxiliary output).
func (t *uidTracker) WriteUIDIni(path string) error {
	if !t.seen {
		return nil
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("max_unique_id=%d\n", t.max)), 0o644)
}
