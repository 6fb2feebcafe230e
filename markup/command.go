package markup

import (
	"sort"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

// Result is the outcome of a markup command: either a transaction that
// handles every selection range, or Abstain.
type Result struct {
	Transaction textedit.Transaction
	Handled     bool
}

// Abstain is the result of a command that leaves the key to its default
// behavior.
var Abstain Result

func handled(tr textedit.Transaction) Result {
	return Result{Transaction: tr, Handled: true}
}

// Target is a host that commands run against.
type Target interface {
	State() *textedit.State
	Tree() *scandown.Tree
	Dispatch(tr textedit.Transaction) error
}

// Command runs against a target, returning true if it dispatched a
// transaction, or false to let the key's default behavior run.
type Command func(t Target) bool

// Commands bound by DefaultKeymap.
var (
	ContinueMarkup Command = func(t Target) bool {
		return run(t, InsertNewlineContinueMarkup(t.State(), t.Tree()))
	}
	Indent Command = func(t Target) bool {
		return run(t, IndentMore(t.State()))
	}
	Dedent Command = func(t Target) bool {
		return run(t, IndentLess(t.State()))
	}
	DeleteMarkup Command = func(t Target) bool {
		return run(t, DeleteMarkupBackward(t.State(), t.Tree()))
	}
)

func run(t Target, res Result) bool {
	if !res.Handled {
		return false
	}
	return t.Dispatch(res.Transaction) == nil
}

// Keymap binds key names to commands.
type Keymap map[string]Command

// DefaultKeymap returns the standard bindings: Enter, Tab, Shift-Tab, and
// Backspace.
func DefaultKeymap() Keymap {
	return Keymap{
		"Enter":     ContinueMarkup,
		"Tab":       Indent,
		"Shift-Tab": Dedent,
		"Backspace": DeleteMarkup,
	}
}

// Run runs any command bound to key, returning false if there is none or if
// it did not handle the key.
func (km Keymap) Run(key string, t Target) bool {
	if cmd := km[key]; cmd != nil {
		return cmd(t)
	}
	return false
}

// Keys returns the bound key names in order.
func (km Keymap) Keys() []string {
	keys := make([]string, 0, len(km))
	for key := range km {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
