package keyscript

import (
	"fmt"

	"github.com/jcorbin/mdcont/markup"
	"github.com/jcorbin/mdcont/textedit"
)

// Tracer receives every step run, along with whether a markup command
// handled it.
type Tracer func(step Step, handled bool)

// Run runs steps against the session in order, stopping at the first error.
func Run(s *markup.Session, steps []Step, trace Tracer) error {
	for i, step := range steps {
		handled, err := runStep(s, step)
		if err != nil {
			return fmt.Errorf("step %v %q: %w", i+1, step, err)
		}
		if trace != nil {
			trace(step, handled)
		}
	}
	return nil
}

func runStep(s *markup.Session, step Step) (bool, error) {
	switch step.Op {
	case Press:
		return s.Press(step.Key)
	case Type:
		return false, s.Type(step.Text)
	case At:
		pos, err := step.Pos[0].Resolve(s.State().Doc)
		if err != nil {
			return false, err
		}
		return false, s.SetSelection(textedit.Single(pos))
	case Select:
		doc := s.State().Doc
		anchor, err := step.Pos[0].Resolve(doc)
		if err != nil {
			return false, err
		}
		head, err := step.Pos[1].Resolve(doc)
		if err != nil {
			return false, err
		}
		return false, s.SetSelection(textedit.NewSelection(textedit.Range{Anchor: anchor, Head: head}))
	}
	return false, fmt.Errorf("%w: invalid step op %v", ErrSyntax, step.Op)
}
