package dict

import (
	"fmt"
	"slices"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
)

// DecodeTable is the decoder side of the dictionary: code -> bytes.
//
// Entries are flat arrays indexed by code. The bytes of an entry are resolved
// on demand by walking parent links from the entry back to its literal root.
type DecodeTable struct {
	parent []uint32
	symbol []byte
	first  []byte   // first byte of the entry string
	length []uint32 // length of the entry string; 0 for the CLEAR slot
	next   uint32
	limit  uint32

	// OnAdd, when set, is called for every learned entry.
	OnAdd func(Entry)
}

// NewDecodeTable creates a decode table for the given width ceiling (9..16).
func NewDecodeTable(maxBits int) (*DecodeTable, error) {
	if !validMaxBits(maxBits) {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMaxBits, maxBits)
	}

	limit := Limit(maxBits)
	t := &DecodeTable{
		parent: make([]uint32, limit),
		symbol: make([]byte, limit),
		first:  make([]byte, limit),
		length: make([]uint32, limit),
		next:   format.FirstFreeCode,
		limit:  limit,
	}

	for i := range format.AlphabetSize {
		t.parent[i] = NoParent
		t.symbol[i] = byte(i)
		t.first[i] = byte(i)
		t.length[i] = 1
	}
	t.parent[format.ClearCode] = NoParent

	return t, nil
}

// Add assigns the next free code to the string of parent followed by symbol.
func (t *DecodeTable) Add(parent uint32, symbol byte) (uint32, error) {
	if t.next >= t.limit {
		return 0, fmt.Errorf("%w: %d entries", errs.ErrDictionaryOverflow, t.limit)
	}
	if !t.Defined(parent) {
		return 0, fmt.Errorf("%w: parent code %d is not defined", errs.ErrCorruptStream, parent)
	}

	code := t.next
	t.parent[code] = parent
	t.symbol[code] = symbol
	t.first[code] = t.first[parent]
	t.length[code] = t.length[parent] + 1
	t.next++

	if t.OnAdd != nil {
		t.OnAdd(Entry{Code: code, Parent: parent, Symbol: symbol})
	}

	return code, nil
}

// Defined reports whether code refers to a literal or a learned entry.
func (t *DecodeTable) Defined(code uint32) bool {
	return code < t.next && code != format.ClearCode
}

// Expand appends the bytes of code to dst and returns the extended slice.
// The caller must check Defined first.
func (t *DecodeTable) Expand(code uint32, dst []byte) []byte {
	n := int(t.length[code])
	start := len(dst)
	dst = slices.Grow(dst, n)[:start+n]

	for i := start + n - 1; i >= start; i-- {
		dst[i] = t.symbol[code]
		code = t.parent[code]
	}

	return dst
}

// First returns the first byte of the string of code.
func (t *DecodeTable) First(code uint32) byte {
	return t.first[code]
}

// Len returns the length of the string of code.
func (t *DecodeTable) Len(code uint32) int {
	return int(t.length[code])
}

// Next returns the code the next Add will assign.
func (t *DecodeTable) Next() uint32 {
	return t.next
}

// Limit returns the number of codes the table can hold.
func (t *DecodeTable) Limit() uint32 {
	return t.limit
}

// Full reports whether every code up to the limit is assigned.
func (t *DecodeTable) Full() bool {
	return t.next >= t.limit
}

// Reset drops every learned entry. The arrays are kept; stale slots beyond
// Next are unreachable because Defined rejects them.
func (t *DecodeTable) Reset() {
	t.next = format.FirstFreeCode
}
