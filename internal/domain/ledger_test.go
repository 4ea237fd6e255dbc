package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, title string) Product {
	return Product{ID: id, Title: title, Price: 9.99, Category: "misc"}
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================================================
// Ledger record semantics
// ============================================================================

func TestRecordDelete_ClearsCreatedAndUpdated(t *testing.T) {
	l := NewLedger()
	l.RecordCreate(product(5, "local"))
	l.RecordUpdate(6, product(6, "edited"))

	l.RecordDelete(5)
	l.RecordDelete(6)

	assert.True(t, l.IsDeleted(5))
	assert.True(t, l.IsDeleted(6))
	_, created := l.FindCreated(5)
	assert.False(t, created)
	_, updated := l.FindUpdated(6)
	assert.False(t, updated)
}

func TestRecordUpdate_EditsLocalCreateInPlace(t *testing.T) {
	l := NewLedger()
	l.RecordCreate(product(5, "local"))

	l.RecordUpdate(5, product(5, "local v2"))

	// Update-after-local-create stays in Created, never moves to Updated.
	p, ok := l.FindCreated(5)
	require.True(t, ok)
	assert.Equal(t, "local v2", p.Title)
	_, inUpdated := l.FindUpdated(5)
	assert.False(t, inUpdated)
}

func TestRecordUpdate_ClearsDeleted(t *testing.T) {
	l := NewLedger()
	l.RecordDelete(7)

	l.RecordUpdate(7, product(7, "restored"))

	assert.False(t, l.IsDeleted(7))
	p, ok := l.FindUpdated(7)
	require.True(t, ok)
	assert.Equal(t, "restored", p.Title)
}

func TestRecordCreate_ClearsPriorEntriesAndReplacesById(t *testing.T) {
	l := NewLedger()
	l.RecordDelete(9)
	l.RecordUpdate(9, product(9, "stale"))
	assert.False(t, l.IsDeleted(9)) // update already cleared the delete

	l.RecordCreate(product(9, "recreated"))
	assert.False(t, l.IsDeleted(9))
	_, inUpdated := l.FindUpdated(9)
	assert.False(t, inUpdated)

	l.RecordCreate(product(9, "recreated v2"))
	p, ok := l.FindCreated(9)
	require.True(t, ok)
	assert.Equal(t, "recreated v2", p.Title)

	// Still exactly one created entry for the id.
	count := 0
	for _, c := range l.Created {
		if c.ID == 9 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLedger_IsEmpty(t *testing.T) {
	l := NewLedger()
	assert.True(t, l.IsEmpty())
	l.RecordDelete(1)
	assert.False(t, l.IsEmpty())
}

// ============================================================================
// Merge
// ============================================================================

func TestMerge(t *testing.T) {
	remote := []Product{product(1, "one"), product(2, "two"), product(3, "three")}

	tests := []struct {
		name    string
		ledger  func() *Ledger
		wantIDs []int64
		check   func(t *testing.T, merged []Product)
	}{
		{
			name:    "nil ledger returns remote unchanged",
			ledger:  func() *Ledger { return nil },
			wantIDs: []int64{1, 2, 3},
		},
		{
			name: "deleted ids excluded",
			ledger: func() *Ledger {
				l := NewLedger()
				l.RecordDelete(2)
				return l
			},
			wantIDs: []int64{1, 3},
		},
		{
			name: "updated ids replaced",
			ledger: func() *Ledger {
				l := NewLedger()
				l.RecordUpdate(2, product(2, "two edited"))
				return l
			},
			wantIDs: []int64{1, 2, 3},
			check: func(t *testing.T, merged []Product) {
				assert.Equal(t, "two edited", merged[1].Title)
			},
		},
		{
			name: "created appended and sorted by ascending id",
			ledger: func() *Ledger {
				l := NewLedger()
				l.RecordCreate(product(10, "ten"))
				l.RecordCreate(product(0, "zero"))
				return l
			},
			wantIDs: []int64{0, 1, 2, 3, 10},
		},
		{
			name: "created with colliding id deduplicates, local copy wins",
			ledger: func() *Ledger {
				l := NewLedger()
				l.RecordCreate(product(3, "three local"))
				return l
			},
			wantIDs: []int64{1, 2, 3},
			check: func(t *testing.T, merged []Product) {
				assert.Equal(t, "three local", merged[2].Title)
			},
		},
		{
			name: "delete wins over create and update",
			ledger: func() *Ledger {
				l := NewLedger()
				l.RecordCreate(product(10, "ten"))
				l.RecordUpdate(2, product(2, "two edited"))
				l.RecordDelete(10)
				l.RecordDelete(2)
				return l
			},
			wantIDs: []int64{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(remote, tt.ledger())
			assert.Equal(t, tt.wantIDs, ids(merged))
			if tt.check != nil {
				tt.check(t, merged)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	remote := []Product{product(2, "two"), product(1, "one")}
	l := NewLedger()
	l.RecordDelete(1)

	_ = Merge(remote, l)

	assert.Equal(t, int64(2), remote[0].ID)
	assert.Equal(t, int64(1), remote[1].ID)
	assert.True(t, l.IsDeleted(1))
}

// ============================================================================
// JSON round-trip
// ============================================================================

func TestLedger_JSONRoundTrip(t *testing.T) {
	l := NewLedger()
	l.RecordCreate(product(100, "local"))
	l.RecordUpdate(2, product(2, "edited"))
	l.RecordDelete(3)

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var restored Ledger
	require.NoError(t, json.Unmarshal(data, &restored))

	_, ok := restored.FindCreated(100)
	assert.True(t, ok)
	p, ok := restored.FindUpdated(2)
	require.True(t, ok)
	assert.Equal(t, "edited", p.Title)
	assert.True(t, restored.IsDeleted(3))
}

func TestLedger_PartialJSONGetsUsableMaps(t *testing.T) {
	var l Ledger
	require.NoError(t, json.Unmarshal([]byte(`{"created":[]}`), &l))

	// Mutators must not panic on nil maps from an older stored shape.
	l.RecordDelete(1)
	assert.True(t, l.IsDeleted(1))
}
