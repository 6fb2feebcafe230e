package textedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	. "github.com/jcorbin/mdcont/textedit"
)

func TestChangeSet_Apply(t *testing.T) {
	cs, err := NewChangeSet(5, Change{3, 4, "X"}, Change{0, 1, "Y"})
	require.NoError(t, err)
	out, err := cs.Apply("abcde")
	require.NoError(t, err)
	assert.Equal(t, "YbcXe", out)
	assert.Equal(t, 5, cs.NewLen())

	_, err = cs.Apply("abc")
	assert.ErrorIs(t, err, ErrLength)
}

func TestChangeSet_Invalid(t *testing.T) {
	_, err := NewChangeSet(5, Change{0, 2, ""}, Change{1, 3, ""})
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = NewChangeSet(5, Change{4, 6, ""})
	assert.ErrorIs(t, err, ErrRange)

	_, err = NewChangeSet(5, Change{3, 2, ""})
	assert.ErrorIs(t, err, ErrRange)
}

func TestChangeSet_DuplicateRange(t *testing.T) {
	cs, err := NewChangeSet(3, Change{1, 2, "a"}, Change{1, 2, "b"})
	require.NoError(t, err)
	assert.Equal(t, []Change{{1, 2, "b"}}, cs.Changes())

	cs, err = NewChangeSet(3, Change{1, 1, ""})
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}

func TestChangeSet_MapPos(t *testing.T) {
	cs, err := NewChangeSet(10, Change{2, 2, "xx"}, Change{5, 7, "abc"})
	require.NoError(t, err)
	for _, tc := range []struct {
		pos, assoc, want int
	}{
		{1, -1, 1},
		{2, -1, 2},
		{2, 1, 4},
		{5, 1, 7},
		{6, -1, 7},
		{6, 1, 10},
		{7, -1, 10},
		{9, 0, 12},
	} {
		assert.Equal(t, tc.want, cs.MapPos(tc.pos, tc.assoc), "MapPos(%v, %v)", tc.pos, tc.assoc)
	}
}

func TestChangeSet_Compose(t *testing.T) {
	base := "hello world"
	a, err := NewChangeSet(len(base), Change{6, 6, "big "})
	require.NoError(t, err)
	b, err := NewChangeSet(a.NewLen(), Change{0, 6, ""}, Change{6, 9, "small"})
	require.NoError(t, err)

	ab, err := a.Compose(b)
	require.NoError(t, err)
	assert.Equal(t, []Change{{0, 6, "small "}}, ab.Changes())

	out, err := ab.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, "small world", out)

	_, err = b.Compose(a)
	assert.NoError(t, err, "b ends at the length a starts from")

	_, err = a.Compose(a)
	assert.ErrorIs(t, err, ErrLength, "a ends longer than it starts")
}

func drawChanges(t *rapid.T, length int, label string) []Change {
	var changes []Change
	n := rapid.IntRange(0, 4).Draw(t, label+" count")
	for pos := 0; len(changes) < n && pos <= length; {
		from := rapid.IntRange(pos, length).Draw(t, label+" from")
		to := rapid.IntRange(from, length).Draw(t, label+" to")
		insert := rapid.StringMatching(`[A-Z]{0,3}`).Draw(t, label+" insert")
		changes = append(changes, Change{From: from, To: to, Insert: insert})
		pos = to
		if from == to {
			pos++
		}
	}
	return changes
}

func TestChangeSet_ComposeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.StringMatching(`[a-z]{0,12}`).Draw(t, "base")

		a, err := NewChangeSet(len(base), drawChanges(t, len(base), "a")...)
		if err != nil {
			t.Fatalf("a: %v", err)
		}
		mid, err := a.Apply(base)
		if err != nil {
			t.Fatalf("apply a: %v", err)
		}

		b, err := NewChangeSet(len(mid), drawChanges(t, len(mid), "b")...)
		if err != nil {
			t.Fatalf("b: %v", err)
		}
		want, err := b.Apply(mid)
		if err != nil {
			t.Fatalf("apply b: %v", err)
		}

		ab, err := a.Compose(b)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		got, err := ab.Apply(base)
		if err != nil {
			t.Fatalf("apply composed: %v", err)
		}
		if got != want {
			t.Fatalf("composed %v applied to %q = %q, want %q", ab, base, got, want)
		}
	})
}

func TestChangeSet_MapPosMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(0, 12).Draw(t, "length")
		cs, err := NewChangeSet(length, drawChanges(t, length, "cs")...)
		if err != nil {
			t.Fatalf("changes: %v", err)
		}
		assoc := rapid.SampledFrom([]int{-1, 1}).Draw(t, "assoc")
		last := -1
		for pos := 0; pos <= length; pos++ {
			mapped := cs.MapPos(pos, assoc)
			if mapped < last || mapped > cs.NewLen() {
				t.Fatalf("MapPos(%v, %v) = %v after %v in %v", pos, assoc, mapped, last, cs)
			}
			last = mapped
		}
	})
}
