package quote

import "github.com/shopspring/decimal"

// NoEditing means no line item is currently loaded into the edit form.
const NoEditing = -1

// State owns one session's ordered line items and the editing pointer.
// Invariants:
//   - editing is NoEditing or a valid index into items
//   - every stored item satisfies VATPrice == UnitPrice*(1+VATRate/100)
//   - every mutation of items or customer info bumps the revision counter
//     (moving the editing pointer alone does not: it invalidates nothing)
//
// State itself is not safe for concurrent use; callers serialize access per
// session.
type State struct {
	items    []LineItem
	editing  int
	customer CustomerInfo
	rev      int64
}

func NewState() *State {
	return &State{editing: NoEditing}
}

func (s *State) Len() int {
	return len(s.items)
}

// Items returns a copy of the ordered line items (insertion order is display
// and document order).
func (s *State) Items() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// EditingIndex returns the editing pointer, ok=false when no edit is in flight.
func (s *State) EditingIndex() (int, bool) {
	if s.editing == NoEditing {
		return NoEditing, false
	}
	return s.editing, true
}

// EditingItem returns the item the edit form should default to.
func (s *State) EditingItem() (LineItem, bool) {
	if s.editing == NoEditing {
		return LineItem{}, false
	}
	return s.items[s.editing], true
}

func (s *State) Customer() CustomerInfo {
	return s.customer
}

// Rev returns the mutation revision. A generated document is valid only while
// the revision it was produced at still matches.
func (s *State) Rev() int64 {
	return s.rev
}

func (s *State) bump() {
	s.rev++
}

// SetCustomer stores trimmed customer info.
func (s *State) SetCustomer(c CustomerInfo) {
	s.customer = c.Normalized()
	s.bump()
}

// Add validates and appends a new line item. The editing pointer is left as-is
// on failure and stays unset on success.
func (s *State) Add(name string, unitPrice decimal.Decimal, vatRate decimal.Decimal) (LineItem, error) {
	item, err := NewLineItem(name, unitPrice, vatRate)
	if err != nil {
		return LineItem{}, err
	}
	s.items = append(s.items, item)
	s.editing = NoEditing
	s.bump()
	return item, nil
}

// BeginEdit points the edit form at items[index] and returns it as the form
// defaults.
func (s *State) BeginEdit(index int) (LineItem, error) {
	if index < 0 || index >= len(s.items) {
		return LineItem{}, &IndexError{Index: index, Len: len(s.items)}
	}
	s.editing = index
	return s.items[index], nil
}

// CommitEdit replaces the item being edited with a freshly validated one and
// clears the editing pointer.
func (s *State) CommitEdit(name string, unitPrice decimal.Decimal, vatRate decimal.Decimal) (LineItem, error) {
	if s.editing == NoEditing {
		return LineItem{}, ErrNotEditing
	}
	item, err := NewLineItem(name, unitPrice, vatRate)
	if err != nil {
		return LineItem{}, err
	}
	s.items[s.editing] = item
	s.editing = NoEditing
	s.bump()
	return item, nil
}

// CancelEdit clears the editing pointer unconditionally.
// Reports whether an edit was actually in flight.
func (s *State) CancelEdit() bool {
	wasEditing := s.editing != NoEditing
	s.editing = NoEditing
	return wasEditing
}

// Delete removes items[index] and re-points the editing pointer:
//   - editing == index: cleared (the item being edited no longer exists)
//   - editing > index: decremented to keep tracking the same logical item
//   - editing < index or unset: unchanged
func (s *State) Delete(index int) (LineItem, error) {
	if index < 0 || index >= len(s.items) {
		return LineItem{}, &IndexError{Index: index, Len: len(s.items)}
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	switch {
	case s.editing == index:
		s.editing = NoEditing
	case s.editing > index:
		s.editing--
	}
	s.bump()
	return removed, nil
}

// Clear empties the item list and the editing pointer.
// Reports false when there was nothing to clear (caller tells the user
// "already empty"); the revision is only bumped when something changed.
func (s *State) Clear() bool {
	if len(s.items) == 0 {
		s.editing = NoEditing
		return false
	}
	s.items = nil
	s.editing = NoEditing
	s.bump()
	return true
}

// Snapshot is an immutable copy of customer info + items taken at
// document-generation time.
type Snapshot struct {
	Customer CustomerInfo
	Items    []LineItem
	Revision int64
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Customer: s.customer,
		Items:    s.Items(),
		Revision: s.rev,
	}
}

// StateData is the serializable form of State, for session stores that hold
// records out of process.
type StateData struct {
	Items    []LineItem   `json:"items"`
	Editing  int          `json:"editing"`
	Customer CustomerInfo `json:"customer"`
	Revision int64        `json:"revision"`
}

func (s *State) Data() StateData {
	return StateData{
		Items:    s.Items(),
		Editing:  s.editing,
		Customer: s.customer,
		Revision: s.rev,
	}
}

// FromData rebuilds a State. An out-of-range editing pointer is dropped rather
// than trusted.
func FromData(d StateData) *State {
	editing := d.Editing
	if editing < 0 || editing >= len(d.Items) {
		editing = NoEditing
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return &State{
		items:    items,
		editing:  editing,
		customer: d.Customer,
		rev:      d.Revision,
	}
}
