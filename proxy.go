package astm

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentList is the live view over a repeated-component field. It
// aliases the element sequence owned by the record: mutations through the
// view are visible to the record and to every other view bound to the
// same sequence. It never copies.
//
// Writes encode through the element field before touching the sequence;
// reads decode, so elements come back as *Record instances. Lookup by
// value (Contains, Count, IndexOf, Remove) compares decoded values and
// accepts either a *Record or its plain value sequence.
type ComponentList struct {
	elems *[]any
	field Field
}

// NewComponentList binds a view to an element sequence and the field that
// coerces its elements. It is called by the repeated field kind when a
// stored sequence is read; there is rarely a reason to call it directly.
func NewComponentList(elems *[]any, element Field) *ComponentList {
	return &ComponentList{elems: elems, field: element}
}

// Len returns the element count.
func (p *ComponentList) Len() int {
	return len(*p.elems)
}

// Get returns the decoded element at index i.
func (p *ComponentList) Get(i int) (any, error) {
	if i < 0 || i >= len(*p.elems) {
		return nil, NewItemNotFoundError(i)
	}
	return p.field.Decode((*p.elems)[i])
}

// Set encodes v and replaces the element at index i.
func (p *ComponentList) Set(i int, v any) error {
	if i < 0 || i >= len(*p.elems) {
		return NewItemNotFoundError(i)
	}
	raw, err := p.field.Encode(v)
	if err != nil {
		return err
	}
	(*p.elems)[i] = raw
	return nil
}

// Append encodes v and adds it after the last element.
func (p *ComponentList) Append(v any) error {
	raw, err := p.field.Encode(v)
	if err != nil {
		return err
	}
	*p.elems = append(*p.elems, raw)
	return nil
}

// Extend encodes every value and appends them in order. Nothing is
// appended unless all values encode.
func (p *ComponentList) Extend(vs ...any) error {
	raws := make([]any, len(vs))
	for i, v := range vs {
		raw, err := p.field.Encode(v)
		if err != nil {
			return err
		}
		raws[i] = raw
	}
	*p.elems = append(*p.elems, raws...)
	return nil
}

// Insert encodes v and places it before index i. The index is clamped to
// the sequence bounds; a negative index counts from the end.
func (p *ComponentList) Insert(i int, v any) error {
	raw, err := p.field.Encode(v)
	if err != nil {
		return err
	}
	if i < 0 {
		i += len(*p.elems)
		if i < 0 {
			i = 0
		}
	}
	if i > len(*p.elems) {
		i = len(*p.elems)
	}
	*p.elems = slices.Insert(*p.elems, i, raw)
	return nil
}

// Delete removes the element at index i.
func (p *ComponentList) Delete(i int) error {
	if i < 0 || i >= len(*p.elems) {
		return NewItemNotFoundError(i)
	}
	*p.elems = slices.Delete(*p.elems, i, i+1)
	return nil
}

// Pop removes the last element and returns its decoded value.
func (p *ComponentList) Pop() (any, error) {
	return p.PopAt(len(*p.elems) - 1)
}

// PopAt removes the element at index i and returns its decoded value.
func (p *ComponentList) PopAt(i int) (any, error) {
	if i < 0 || i >= len(*p.elems) {
		return nil, NewItemNotFoundError(i)
	}
	v, err := p.field.Decode((*p.elems)[i])
	if err != nil {
		return nil, err
	}
	*p.elems = slices.Delete(*p.elems, i, i+1)
	return v, nil
}

// Remove deletes the first element whose decoded value equals v.
func (p *ComponentList) Remove(v any) error {
	i, err := p.IndexOf(v)
	if err != nil {
		return err
	}
	*p.elems = slices.Delete(*p.elems, i, i+1)
	return nil
}

// IndexOf returns the index of the first element whose decoded value
// equals v, or ErrItemNotFound when no element matches.
func (p *ComponentList) IndexOf(v any) (int, error) {
	for i := range *p.elems {
		item, err := p.field.Decode((*p.elems)[i])
		if err != nil {
			return 0, err
		}
		if valueEqual(item, v) {
			return i, nil
		}
	}
	return 0, NewItemNotFoundError(v)
}

// Contains reports if any element's decoded value equals v.
func (p *ComponentList) Contains(v any) (bool, error) {
	_, err := p.IndexOf(v)
	if IsItemNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of elements whose decoded value equals v.
func (p *ComponentList) Count(v any) (int, error) {
	n := 0
	for i := range *p.elems {
		item, err := p.field.Decode((*p.elems)[i])
		if err != nil {
			return 0, err
		}
		if valueEqual(item, v) {
			n++
		}
	}
	return n, nil
}

// Items returns the decoded elements in order.
func (p *ComponentList) Items() ([]any, error) {
	items := make([]any, len(*p.elems))
	for i := range *p.elems {
		item, err := p.field.Decode((*p.elems)[i])
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// Values materializes the fully decoded element value lists, one per
// element in order. This is the form comparisons operate on.
func (p *ComponentList) Values() ([][]any, error) {
	values := make([][]any, len(*p.elems))
	for i := range *p.elems {
		item, err := p.field.Decode((*p.elems)[i])
		if err != nil {
			return nil, err
		}
		rec, ok := item.(*Record)
		if !ok {
			return nil, NewValueTypeError(p.field.Name(), item, "component instance")
		}
		values[i], err = rec.Values()
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Equal reports if both views hold the same number of elements with equal
// decoded values in order.
func (p *ComponentList) Equal(other *ComponentList) bool {
	if other == nil || p.Len() != other.Len() {
		return false
	}
	values, err := other.Values()
	if err != nil {
		return false
	}
	return p.EqualValues(values)
}

// EqualValues reports if the decoded element value lists match the given
// sequence in order.
func (p *ComponentList) EqualValues(values [][]any) bool {
	own, err := p.Values()
	if err != nil || len(own) != len(values) {
		return false
	}
	for i := range own {
		if len(own[i]) != len(values[i]) {
			return false
		}
		for j := range own[i] {
			if !valueEqual(own[i][j], values[i][j]) {
				return false
			}
		}
	}
	return true
}

// Compare orders the view against the given element value lists
// lexicographically: negative when the view sorts first, positive when it
// sorts last, zero when equal. Values without a defined order fail
// ErrUnsupported.
func (p *ComponentList) Compare(other [][]any) (int, error) {
	own, err := p.Values()
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(own) && i < len(other); i++ {
		c, err := compareValues(own[i], other[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(len(own), len(other)), nil
}

// Sort always fails: elements order positionally on the wire, so in-place
// sorting is excluded.
func (p *ComponentList) Sort() error {
	return NewUnsupportedError("in-place sorting")
}

// String renders the raw element sequence.
func (p *ComponentList) String() string {
	var b strings.Builder
	b.WriteString("ComponentList")
	fmt.Fprintf(&b, "%v", *p.elems)
	return b.String()
}

func compareValues(a, b []any) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, err := compareValue(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(len(a), len(b)), nil
}

// compareValue orders two decoded scalars. Nil sorts before everything.
func compareValue(a, b any) (int, error) {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0, nil
		case a == nil:
			return -1, nil
		default:
			return 1, nil
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y), nil
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y), nil
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	}
	return 0, NewUnsupportedError(fmt.Sprintf("ordering %T against %T", a, b))
}
