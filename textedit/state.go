package textedit

import "fmt"

// Transaction is one atomic edit: a change set plus the selection that
// results from it.
type Transaction struct {
	Changes        ChangeSet
	Selection      Selection
	UserEvent      string // e.g. "input", "input.indent", "delete"
	ScrollIntoView bool
}

// State is an immutable editor state.
type State struct {
	Doc       *Doc
	Selection Selection
	ReadOnly  bool
}

// NewState returns a state holding text with the given selection.
func NewState(text string, opts Options, sel Selection) *State {
	return &State{
		Doc:       NewDoc(text, opts),
		Selection: sel,
	}
}

// Apply returns the state that results from the transaction.
func (st *State) Apply(tr Transaction) (*State, error) {
	text, err := tr.Changes.Apply(st.Doc.String())
	if err != nil {
		return nil, err
	}
	doc := st.Doc
	if !tr.Changes.Empty() {
		doc = NewDoc(text, st.Doc.Options())
	}
	for _, r := range tr.Selection.Ranges {
		if r.Anchor < 0 || r.Head < 0 || r.Anchor > doc.Len() || r.Head > doc.Len() {
			return nil, fmt.Errorf("%w: selection %v in length %v", ErrRange, r, doc.Len())
		}
	}
	return &State{
		Doc:       doc,
		Selection: tr.Selection,
		ReadOnly:  st.ReadOnly,
	}, nil
}

// RangeChange is the per-range outcome of ChangeByRange: changes against the
// state's document, and the resulting cursor given as a position in that
// same document along with how it associates with inserted text.
type RangeChange struct {
	Changes []Change
	Cursor  int
	Assoc   int
}

// ChangeByRange calls fn for every selection range and merges the results
// into one transaction. If fn declines any range, by returning false, no
// transaction is produced.
func (st *State) ChangeByRange(fn func(r Range) (RangeChange, bool)) (Transaction, bool, error) {
	var (
		changes []Change
		cursors = make([]RangeChange, 0, len(st.Selection.Ranges))
	)
	for _, r := range st.Selection.Ranges {
		rc, ok := fn(r)
		if !ok {
			return Transaction{}, false, nil
		}
		changes = append(changes, rc.Changes...)
		cursors = append(cursors, rc)
	}
	cs, err := NewChangeSet(st.Doc.Len(), changes...)
	if err != nil {
		return Transaction{}, false, err
	}
	ranges := make([]Range, len(cursors))
	for i, rc := range cursors {
		ranges[i] = Cursor(cs.MapPos(rc.Cursor, rc.Assoc))
	}
	return Transaction{
		Changes:   cs,
		Selection: Selection{Ranges: ranges, Main: st.Selection.Main},
	}, true, nil
}
