package nucaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSwath() *Swath {
	return &Swath{
		Latitude:    []float64{40.1, 40.6, 41.2, 41.7, 42.3},
		Longitude:   []float64{-100.0, -99.5, -99.1, -98.6, -98.2},
		FOR:         []int{0, 1, 2, 3, 4},
		Time:        []float64{1.879e9, 1.879e9, 1.879e9, 1.879e9, 1.879e9},
		QualityFlag: []int{0, 1, 0, 0, 1},
		Pressure:    []float64{1000, 850, 500, 496, 300},
		Vars: map[string][][]float64{
			VarMoisture: {
				{11, 12, 13, 14, 15},
				{21, 22, 23, 24, 25},
				{31, 32, 33, 34, 35},
				{41, 42, 43, 44, 45},
				{51, 52, 53, 54, 55},
			},
		},
	}
}

func TestFilterQuality(t *testing.T) {
	s := testSwath()
	got := s.FilterQuality(BestQuality)

	assert.Equal(t, 3, got.Len())
	assert.Equal(t, []int{0, 2, 3}, got.FOR)
	assert.Equal(t, []float64{40.1, 41.2, 41.7}, got.Latitude)
	assert.Equal(t, []float64{-100.0, -99.1, -98.6}, got.Longitude)
	assert.Equal(t, []int{0, 0, 0}, got.QualityFlag)

	mr, err := got.Var(VarMoisture)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{11, 12, 13, 14, 15},
		{31, 32, 33, 34, 35},
		{41, 42, 43, 44, 45},
	}, mr)

	// Shared levels and the source swath are untouched.
	assert.Equal(t, s.Pressure, got.Pressure)
	assert.Equal(t, 5, s.Len())
}

func TestFilterQualityKeepsNothing(t *testing.T) {
	got := testSwath().FilterQuality(9)
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Vars[VarMoisture])
}

func TestLevelIndex(t *testing.T) {
	ix, err := testSwath().LevelIndex()
	require.NoError(t, err)

	// The tutorial's 500mb request resolves exactly: 500 is present.
	i, err := ix.Lookup(500)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestQualityThenLevelSelection(t *testing.T) {
	// Filtering profiles must not disturb level selection: the two act on
	// different axes of the swath.
	s := testSwath().FilterQuality(BestQuality)
	require.Equal(t, 3, s.Len())

	ix, err := s.LevelIndex()
	require.NoError(t, err)
	i, err := ix.Lookup(500)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 500.0, ix.Pressure(i))
}

func TestConcat(t *testing.T) {
	a := testSwath()
	b := testSwath()

	got, err := Concat(a, b)
	require.NoError(t, err)

	assert.Equal(t, 10, got.Len())
	// FORs renumber consecutively across granules in input order.
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got.FOR)
	assert.Equal(t, a.Pressure, got.Pressure)

	mr, err := got.Var(VarMoisture)
	require.NoError(t, err)
	require.Len(t, mr, 10)
	assert.Equal(t, mr[0], mr[5])
}

func TestConcatLevelMismatch(t *testing.T) {
	a := testSwath()
	b := testSwath()
	b.Pressure = b.Pressure[:3]

	_, err := Concat(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pressure levels")
}

func TestConcatMissingVariable(t *testing.T) {
	a := testSwath()
	b := testSwath()
	delete(b.Vars, VarMoisture)

	_, err := Concat(a, b)
	require.Error(t, err)
}

func TestConcatEmpty(t *testing.T) {
	_, err := Concat()
	assert.Error(t, err)
}
