package dict

import (
	"fmt"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
)

// EncodeTable is the encoder side of the dictionary: (parent, symbol) -> code.
type EncodeTable struct {
	codes map[uint32]uint32 // key: parent<<8 | symbol
	next  uint32
	limit uint32

	// OnAdd, when set, is called for every learned entry.
	OnAdd func(Entry)
}

// NewEncodeTable creates an encode table for the given width ceiling (9..16).
func NewEncodeTable(maxBits int) (*EncodeTable, error) {
	if !validMaxBits(maxBits) {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMaxBits, maxBits)
	}

	limit := Limit(maxBits)

	return &EncodeTable{
		codes: make(map[uint32]uint32, limit-format.FirstFreeCode),
		next:  format.FirstFreeCode,
		limit: limit,
	}, nil
}

// Lookup returns the code of parent+symbol if the table holds it.
//
// Literal codes are never stored in the map: a parent is always a valid code
// (a literal byte or a learned entry), so only learned extensions are looked up.
func (t *EncodeTable) Lookup(parent uint32, symbol byte) (uint32, bool) {
	code, ok := t.codes[parent<<8|uint32(symbol)]
	return code, ok
}

// Add assigns the next free code to parent+symbol.
func (t *EncodeTable) Add(parent uint32, symbol byte) (uint32, error) {
	if t.next >= t.limit {
		return 0, fmt.Errorf("%w: %d entries", errs.ErrDictionaryOverflow, t.limit)
	}

	code := t.next
	t.codes[parent<<8|uint32(symbol)] = code
	t.next++

	if t.OnAdd != nil {
		t.OnAdd(Entry{Code: code, Parent: parent, Symbol: symbol})
	}

	return code, nil
}

// Next returns the code the next Add will assign.
func (t *EncodeTable) Next() uint32 {
	return t.next
}

// Limit returns the number of codes the table can hold.
func (t *EncodeTable) Limit() uint32 {
	return t.limit
}

// Full reports whether every code up to the limit is assigned.
func (t *EncodeTable) Full() bool {
	return t.next >= t.limit
}

// Len returns the number of learned entries.
func (t *EncodeTable) Len() int {
	return len(t.codes)
}

// Reset drops every learned entry.
func (t *EncodeTable) Reset() {
	clear(t.codes)
	t.next = format.FirstFreeCode
}
