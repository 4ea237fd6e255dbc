package domain

import "sort"

// Ledger records catalog mutations applied locally when the remote backend
// does not durably persist writes. Invariants: an id recorded as deleted never
// also appears in Created or Updated (a delete clears both); an id that was
// created locally and later updated stays in Created, edited in place.
type Ledger struct {
	Created []Product         `json:"created"`
	Updated map[int64]Product `json:"updated"`
	Deleted map[int64]bool    `json:"deleted"`
}

// NewLedger creates an empty mutation ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Created: []Product{},
		Updated: make(map[int64]Product),
		Deleted: make(map[int64]bool),
	}
}

// init repairs nil maps after a JSON round-trip of an older or partial ledger.
func (l *Ledger) init() {
	if l.Updated == nil {
		l.Updated = make(map[int64]Product)
	}
	if l.Deleted == nil {
		l.Deleted = make(map[int64]bool)
	}
}

// IsEmpty reports whether the ledger holds no mutations.
func (l *Ledger) IsEmpty() bool {
	return len(l.Created) == 0 && len(l.Updated) == 0 && len(l.Deleted) == 0
}

// IsDeleted reports whether the id was deleted locally.
func (l *Ledger) IsDeleted(id int64) bool {
	return l.Deleted[id]
}

// FindCreated returns a locally created product by id.
func (l *Ledger) FindCreated(id int64) (Product, bool) {
	for _, p := range l.Created {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindUpdated returns a locally updated product by id.
func (l *Ledger) FindUpdated(id int64) (Product, bool) {
	p, ok := l.Updated[id]
	return p, ok
}

// RecordCreate registers a locally created product, clearing any prior
// deleted or updated entry for its id. A created entry with the same id
// is replaced.
func (l *Ledger) RecordCreate(p Product) {
	l.init()
	delete(l.Deleted, p.ID)
	delete(l.Updated, p.ID)

	for i := range l.Created {
		if l.Created[i].ID == p.ID {
			l.Created[i] = p
			return
		}
	}
	l.Created = append(l.Created, p)
}

// RecordUpdate registers a local update. If the id was created locally, the
// created entry is edited in place; otherwise the product lands in Updated.
// Any prior deleted entry for the id is cleared.
func (l *Ledger) RecordUpdate(id int64, p Product) {
	l.init()
	p.ID = id
	delete(l.Deleted, id)

	for i := range l.Created {
		if l.Created[i].ID == id {
			l.Created[i] = p
			return
		}
	}
	l.Updated[id] = p
}

// RecordDelete registers a local delete. Delete wins: the id is removed from
// Created and Updated.
func (l *Ledger) RecordDelete(id int64) {
	l.init()
	l.Deleted[id] = true
	delete(l.Updated, id)

	for i := range l.Created {
		if l.Created[i].ID == id {
			l.Created = append(l.Created[:i], l.Created[i+1:]...)
			break
		}
	}
}

// Merge overlays the ledger onto a remote product snapshot: deleted ids are
// excluded, updated ids replaced, created products appended. The result is
// deduplicated by id (the local copy wins) and ordered by ascending id.
// Pure with respect to both inputs.
func Merge(remote []Product, l *Ledger) []Product {
	if l == nil {
		l = NewLedger()
	}
	l.init()

	byID := make(map[int64]Product, len(remote)+len(l.Created))
	for _, p := range remote {
		if l.Deleted[p.ID] {
			continue
		}
		byID[p.ID] = p
	}

	for id, p := range l.Updated {
		if _, ok := byID[id]; ok {
			byID[id] = p
		}
	}

	for _, p := range l.Created {
		if l.Deleted[p.ID] {
			continue
		}
		byID[p.ID] = p
	}

	merged := make([]Product, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })

	return merged
}
