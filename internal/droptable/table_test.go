package droptable

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/domain"
)

func testSkin(name string) *domain.Skin {
	return &domain.Skin{Name: name, MinValue: 100, MaxValue: 1000}
}

func TestNew(t *testing.T) {
	t.Run("rejects empty table", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyDropTable)
	})

	t.Run("rejects all-zero weights", func(t *testing.T) {
		_, err := New([]Entry{
			{Skin: testSkin("a"), Weight: 0},
			{Skin: testSkin("b"), Weight: 0},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyDropTable)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		_, err := New([]Entry{
			{Skin: testSkin("a"), Weight: 10},
			{Skin: testSkin("b"), Weight: -1},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyDropTable)
	})

	t.Run("compiles cumulative total", func(t *testing.T) {
		table, err := New([]Entry{
			{Skin: testSkin("a"), Weight: 79.92},
			{Skin: testSkin("b"), Weight: 15.98},
			{Skin: testSkin("c"), Weight: 3.2},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, table.Len())
		assert.InDelta(t, 99.1, table.TotalWeight(), 1e-9)
	})
}

func TestSample(t *testing.T) {
	t.Run("roll past first entry selects second", func(t *testing.T) {
		// weights 90/10, roll lands at 95 of 100: cumulative A=90 < 95,
		// B=100 >= 95 so B wins.
		table, err := New([]Entry{
			{Skin: testSkin("itemA"), Weight: 90},
			{Skin: testSkin("itemB"), Weight: 10},
		})
		require.NoError(t, err)

		skin := table.Sample(func() float64 { return 0.95 })
		assert.Equal(t, "itemB", skin.Name)
	})

	t.Run("roll inside first interval selects first", func(t *testing.T) {
		table, err := New([]Entry{
			{Skin: testSkin("itemA"), Weight: 90},
			{Skin: testSkin("itemB"), Weight: 10},
		})
		require.NoError(t, err)

		skin := table.Sample(func() float64 { return 0.0 })
		assert.Equal(t, "itemA", skin.Name)
	})

	t.Run("zero-weight entries are never selected", func(t *testing.T) {
		table, err := New([]Entry{
			{Skin: testSkin("dead"), Weight: 0},
			{Skin: testSkin("live"), Weight: 5},
		})
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 10000; i++ {
			assert.Equal(t, "live", table.Sample(rng.Float64).Name)
		}
	})

	t.Run("overshoot lands on last positive-weight entry", func(t *testing.T) {
		// A roll at the very top of [0,1) can round past the cumulative
		// total when multiplied. The walk then exhausts without a match and
		// the fallback must skip trailing zero-weight entries.
		table, err := New([]Entry{
			{Skin: testSkin("live"), Weight: 3},
			{Skin: testSkin("dead"), Weight: 0},
		})
		require.NoError(t, err)

		overshoot := math.Nextafter(1, 2) // forces roll > total
		skin := table.Sample(func() float64 { return overshoot })
		assert.Equal(t, "live", skin.Name)
	})
}

func TestDraw(t *testing.T) {
	t.Run("is deterministic under a seeded stream", func(t *testing.T) {
		table, err := New([]Entry{
			{Skin: testSkin("a"), Weight: 60},
			{Skin: testSkin("b"), Weight: 30},
			{Skin: testSkin("c"), Weight: 10},
		})
		require.NoError(t, err)

		first := rand.New(rand.NewSource(42))
		second := rand.New(rand.NewSource(42))

		for i := 0; i < 1000; i++ {
			skinA, floatA := table.Draw(first.Float64)
			skinB, floatB := table.Draw(second.Float64)
			require.Equal(t, skinA.Name, skinB.Name)
			require.Equal(t, floatA, floatB)
		}
	})

	t.Run("wear float is in the half-open unit interval", func(t *testing.T) {
		table, err := New([]Entry{{Skin: testSkin("a"), Weight: 1}})
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 10000; i++ {
			_, f := table.Draw(rng.Float64)
			require.GreaterOrEqual(t, f, 0.0)
			require.Less(t, f, 1.0)
		}
	})

	t.Run("selection frequency converges to weight share", func(t *testing.T) {
		table, err := New([]Entry{
			{Skin: testSkin("common"), Weight: 80},
			{Skin: testSkin("rare"), Weight: 16},
			{Skin: testSkin("covert"), Weight: 4},
		})
		require.NoError(t, err)

		const draws = 200000
		counts := make(map[string]int)
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < draws; i++ {
			skin, _ := table.Draw(rng.Float64)
			counts[skin.Name]++
		}

		assert.InDelta(t, 0.80, float64(counts["common"])/draws, 0.01)
		assert.InDelta(t, 0.16, float64(counts["rare"])/draws, 0.01)
		assert.InDelta(t, 0.04, float64(counts["covert"])/draws, 0.01)
	})
}

func BenchmarkDraw(b *testing.B) {
	entries := make([]Entry, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, Entry{Skin: testSkin(string(rune('a' + i))), Weight: float64(i + 1)})
	}
	table, err := New(entries)
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Draw(rng.Float64)
	}
}
