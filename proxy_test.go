package astm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labwire/astm"
	"github.com/labwire/astm/field"
)

var testSchema = astm.MustSchema("Test", field.Text("code"), field.Text("name"))

func newOrder(t testing.TB, elems [][]any) *astm.Record {
	t.Helper()
	s := astm.MustSchema("Order",
		field.Text("id"),
		field.Repeated("tests", testSchema),
	)
	args := astm.Named{"id": "O1"}
	if elems != nil {
		args["tests"] = elems
	}
	r, err := s.New(args)
	require.NoError(t, err)
	return r
}

func testsView(t testing.TB, r *astm.Record) *astm.ComponentList {
	t.Helper()
	v, err := r.Get("tests")
	require.NoError(t, err)
	view, ok := v.(*astm.ComponentList)
	require.True(t, ok)
	return view
}

// TestComponentListAliasing tests that every view over a stored group
// mutates the same element sequence.
func TestComponentListAliasing(t *testing.T) {
	t.Run("VisibleAcrossViews", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		first := testsView(t, r)
		second := testsView(t, r)

		require.NoError(t, first.Append([]any{"CL", "Chloride"}))

		assert.Equal(t, 3, first.Len())
		assert.Equal(t, 3, second.Len())
		assert.Equal(t, 3, testsView(t, r).Len())
	})

	t.Run("SurvivesSequenceGrowth", func(t *testing.T) {
		r := newOrder(t, nil)
		first := testsView(t, r)
		second := testsView(t, r)

		// Grow far past the initial capacity through one view only.
		for i := 0; i < 64; i++ {
			require.NoError(t, first.Append([]any{"NA", "Sodium"}))
		}
		assert.Equal(t, 64, second.Len())
	})

	t.Run("EmptyGroupStillAliases", func(t *testing.T) {
		r := newOrder(t, nil)
		view := testsView(t, r)
		assert.Equal(t, 0, view.Len())

		require.NoError(t, view.Append([]any{"NA", "Sodium"}))
		assert.Equal(t, []any{"O1", []any{[]any{"NA", "Sodium"}}}, r.ToWire())
	})

	t.Run("FreshSequencePerAssignment", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		stale := testsView(t, r)

		require.NoError(t, r.Set("tests", [][]any{{"CL", "Chloride"}}))

		// The old view keeps aliasing the replaced sequence.
		assert.Equal(t, 2, stale.Len())
		assert.Equal(t, 1, testsView(t, r).Len())
	})

	t.Run("UnsetDropsTheSequence", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}})
		require.NoError(t, r.Unset("tests"))

		// An absent group reads as a plain empty sequence, not a view.
		v, err := r.Get("tests")
		require.NoError(t, err)
		assert.Equal(t, []any{}, v)
	})
}

// TestComponentListOps tests element access and mutation.
func TestComponentListOps(t *testing.T) {
	t.Run("GetDecodesElements", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		view := testsView(t, r)

		v, err := view.Get(1)
		require.NoError(t, err)
		elem, ok := v.(*astm.Record)
		require.True(t, ok)
		assert.True(t, elem.EqualValues([]any{"K", "Potassium"}))

		_, err = view.Get(2)
		assert.True(t, astm.IsItemNotFound(err))
	})

	t.Run("Set", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}})
		view := testsView(t, r)

		require.NoError(t, view.Set(0, []any{"K", "Potassium"}))
		assert.True(t, view.EqualValues([][]any{{"K", "Potassium"}}))

		assert.True(t, astm.IsItemNotFound(view.Set(1, []any{"CL", "Chloride"})))
	})

	t.Run("ExtendIsAtomic", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}})
		view := testsView(t, r)

		err := view.Extend([]any{"K", "Potassium"}, "plain text")
		require.Error(t, err)
		assert.True(t, astm.IsInvalidValueType(err))
		// Nothing was appended.
		assert.Equal(t, 1, view.Len())

		require.NoError(t, view.Extend([]any{"K", "Potassium"}, []any{"CL", "Chloride"}))
		assert.Equal(t, 3, view.Len())
	})

	t.Run("Insert", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"CL", "Chloride"}})
		view := testsView(t, r)

		require.NoError(t, view.Insert(1, []any{"K", "Potassium"}))
		assert.True(t, view.EqualValues([][]any{
			{"NA", "Sodium"}, {"K", "Potassium"}, {"CL", "Chloride"},
		}))

		// Negative indexes count from the end, out-of-range clamps.
		require.NoError(t, view.Insert(-1, []any{"CA", "Calcium"}))
		i, err := view.IndexOf([]any{"CA", "Calcium"})
		require.NoError(t, err)
		assert.Equal(t, 2, i)

		require.NoError(t, view.Insert(99, []any{"MG", "Magnesium"}))
		assert.Equal(t, 5, view.Len())
		i, err = view.IndexOf([]any{"MG", "Magnesium"})
		require.NoError(t, err)
		assert.Equal(t, 4, i)
	})

	t.Run("DeleteAndPop", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}, {"CL", "Chloride"}})
		view := testsView(t, r)

		require.NoError(t, view.Delete(0))
		assert.Equal(t, 2, view.Len())

		v, err := view.Pop()
		require.NoError(t, err)
		assert.True(t, v.(*astm.Record).EqualValues([]any{"CL", "Chloride"}))
		assert.Equal(t, 1, view.Len())

		v, err = view.PopAt(0)
		require.NoError(t, err)
		assert.True(t, v.(*astm.Record).EqualValues([]any{"K", "Potassium"}))
		assert.Equal(t, 0, view.Len())

		_, err = view.Pop()
		assert.True(t, astm.IsItemNotFound(err))
	})

	t.Run("Remove", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		view := testsView(t, r)

		require.NoError(t, view.Remove([]any{"NA", "Sodium"}))
		assert.Equal(t, 1, view.Len())

		err := view.Remove([]any{"NA", "Sodium"})
		assert.True(t, astm.IsItemNotFound(err))
	})

	t.Run("Lookup", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}, {"NA", "Sodium"}})
		view := testsView(t, r)

		i, err := view.IndexOf([]any{"K", "Potassium"})
		require.NoError(t, err)
		assert.Equal(t, 1, i)

		// Lookups also accept an instance.
		i, err = view.IndexOf(testSchema.MustNew("NA", "Sodium"))
		require.NoError(t, err)
		assert.Equal(t, 0, i)

		ok, err := view.Contains([]any{"K", "Potassium"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = view.Contains([]any{"MG", "Magnesium"})
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := view.Count([]any{"NA", "Sodium"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("ItemsAndValues", func(t *testing.T) {
		r := newOrder(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		view := testsView(t, r)

		items, err := view.Items()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, items[0].(*astm.Record).EqualValues([]any{"NA", "Sodium"}))

		values, err := view.Values()
		require.NoError(t, err)
		assert.Equal(t, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}}, values)
	})

	t.Run("RejectsPlainText", func(t *testing.T) {
		r := newOrder(t, nil)
		view := testsView(t, r)
		assert.True(t, astm.IsInvalidValueType(view.Append("NA^Sodium")))
	})
}

// TestComponentListCompare tests ordering and equality of element groups.
func TestComponentListCompare(t *testing.T) {
	t.Run("Equal", func(t *testing.T) {
		a := testsView(t, newOrder(t, [][]any{{"NA", "Sodium"}}))
		b := testsView(t, newOrder(t, [][]any{{"NA", "Sodium"}}))
		c := testsView(t, newOrder(t, [][]any{{"K", "Potassium"}}))

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.False(t, a.Equal(nil))
		assert.True(t, a.EqualValues([][]any{{"NA", "Sodium"}}))
	})

	t.Run("Lexicographic", func(t *testing.T) {
		view := testsView(t, newOrder(t, [][]any{{"NA", "Sodium"}}))

		c, err := view.Compare([][]any{{"NA", "Sodium"}})
		require.NoError(t, err)
		assert.Equal(t, 0, c)

		c, err = view.Compare([][]any{{"ZN", "Zinc"}})
		require.NoError(t, err)
		assert.Negative(t, c)

		c, err = view.Compare([][]any{{"CA", "Calcium"}})
		require.NoError(t, err)
		assert.Positive(t, c)

		// Equal prefixes break the tie on length.
		c, err = view.Compare([][]any{{"NA", "Sodium"}, {"K", "Potassium"}})
		require.NoError(t, err)
		assert.Negative(t, c)
	})

	t.Run("NilSortsFirst", func(t *testing.T) {
		r := newOrder(t, nil)
		view := testsView(t, r)
		require.NoError(t, view.Append([]any{"NA"}))

		c, err := view.Compare([][]any{{"NA", "Sodium"}})
		require.NoError(t, err)
		assert.Negative(t, c)
	})

	t.Run("UnorderedValues", func(t *testing.T) {
		view := testsView(t, newOrder(t, [][]any{{"NA", "Sodium"}}))
		_, err := view.Compare([][]any{{1, "Sodium"}})
		require.Error(t, err)
		assert.True(t, astm.IsUnsupported(err))
	})
}

// TestComponentListSort tests that in-place sorting stays excluded.
func TestComponentListSort(t *testing.T) {
	view := testsView(t, newOrder(t, [][]any{{"NA", "Sodium"}}))
	err := view.Sort()
	require.Error(t, err)
	assert.True(t, astm.IsUnsupported(err))
}

// BenchmarkComponentList benchmarks group mutation through a view.
func BenchmarkComponentList(b *testing.B) {
	b.Run("Append", func(b *testing.B) {
		r := newOrder(b, nil)
		view := testsView(b, r)
		elem := testSchema.MustNew("NA", "Sodium")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = view.Append(elem)
		}
	})

	b.Run("IndexOf", func(b *testing.B) {
		r := newOrder(b, [][]any{{"NA", "Sodium"}, {"K", "Potassium"}, {"CL", "Chloride"}})
		view := testsView(b, r)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = view.IndexOf([]any{"CL", "Chloride"})
		}
	})
}
