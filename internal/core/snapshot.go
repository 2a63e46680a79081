package core

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"nominalc/internal/symbols"
)

// snapshotSchemaVersion guards the on-disk shape of Snapshot; bump it
// whenever a field is added/removed/retyped, the same convention the
// teacher's disk cache payload uses for its own schema field.
const snapshotSchemaVersion uint16 = 1

// SnapshotEntry is one declared symbol's durable identity: enough to
// rebuild a qualified-name index across a process restart without
// re-running attribution, but none of the in-memory arena indices (those
// are only stable for the lifetime of the Store/Table that produced them).
type SnapshotEntry struct {
	QualifiedName string
	Kind          uint8
	Flags         uint16
}

// Snapshot is the msgpack-serializable dump of a Pipeline's declared
// symbols, spec.md's "FindSymbol(qualifiedName)" index made durable.
type Snapshot struct {
	Schema  uint16
	Entries []SnapshotEntry
}

// Snapshot walks every package/class/interface/member reachable from the
// root scope and records its qualified name, kind, and flags.
func (p *Pipeline) Snapshot() Snapshot {
	snap := Snapshot{Schema: snapshotSchemaVersion}
	root := p.Symbols.Scopes.Get(p.Symbols.Root())
	if root == nil {
		return snap
	}
	for _, id := range root.Snapshot() {
		p.collectSnapshot(&snap, "", id)
	}
	return snap
}

func (p *Pipeline) collectSnapshot(snap *Snapshot, prefix string, id symbols.SymbolID) {
	sym := p.Symbols.Symbol(id)
	if sym == nil {
		return
	}
	name, _ := p.Names.Lookup(sym.Name)
	qualified := name
	if prefix != "" {
		qualified = prefix + "." + name
	}
	snap.Entries = append(snap.Entries, SnapshotEntry{
		QualifiedName: qualified,
		Kind:          uint8(sym.Kind),
		Flags:         uint16(sym.Flags),
	})
	if sym.Class == nil {
		return
	}
	scope := p.Symbols.Scopes.Get(sym.Class.MemberScope)
	if scope == nil {
		return
	}
	for _, memberID := range scope.Snapshot() {
		p.collectSnapshot(snap, qualified, memberID)
	}
}

// DumpSnapshot encodes this pipeline's symbol snapshot to w, msgpack-coded
// the same way the teacher's DiskCache persists a DiskPayload.
func (p *Pipeline) DumpSnapshot(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(p.Snapshot())
}

// LoadSnapshot decodes a previously-dumped symbol snapshot from r. It does
// not repopulate the pipeline's own tables — a snapshot is a read-only
// index for tooling (e.g. a "jump to qualified name" query) that doesn't
// need a live Store/Table to answer from.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.NewDecoder(r).Decode(&snap)
	return snap, err
}

// Lookup finds an entry by its exact qualified name, or ok=false if absent.
func (s Snapshot) Lookup(qualifiedName string) (SnapshotEntry, bool) {
	for _, e := range s.Entries {
		if e.QualifiedName == qualifiedName {
			return e, true
		}
	}
	return SnapshotEntry{}, false
}
