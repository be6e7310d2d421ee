package profile

import (
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/ohowland/esm_core/internal/pkg/component"
)

const testProfile = "./testdata/el_demand_test.csv"

func TestLoadColumn(t *testing.T) {
	s, err := LoadColumn(testProfile, "Last (MW)", 0)
	assert.NilError(t, err)
	assert.Equal(t, len(s), 4)
	assert.Equal(t, s[0], component.Float(1035.0))
	assert.Equal(t, s[3], component.Float(936.1))
}

func TestLoadColumnByName(t *testing.T) {
	// both value columns must be reachable by header name
	s, err := LoadColumn(testProfile, "Prognose (MW)", 0)
	assert.NilError(t, err)
	assert.Equal(t, s[0], component.Float(1020.1))
}

func TestLoadColumnTruncates(t *testing.T) {
	s, err := LoadColumn(testProfile, "Last (MW)", 2)
	assert.NilError(t, err)
	assert.Equal(t, len(s), 2)
}

func TestLoadColumnShortFile(t *testing.T) {
	_, err := LoadColumn(testProfile, "Last (MW)", 10)
	assert.Assert(t, err != nil)
}

func TestLoadColumnNoSuchColumn(t *testing.T) {
	_, err := LoadColumn(testProfile, "Temperatur", 0)
	assert.Assert(t, err != nil)

	// the first column is the index, not a value column
	_, err = LoadColumn(testProfile, "Zeit", 0)
	assert.Assert(t, err != nil)
}

func TestLoadColumnNoSuchFile(t *testing.T) {
	_, err := LoadColumn("./testdata/missing.csv", "Last (MW)", 0)
	assert.Assert(t, err != nil)
}

func TestLoadColumnUnparsableCell(t *testing.T) {
	dir, err := ioutil.TempDir("", "profile")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.csv")
	body := "Zeit;Last (MW)\n2019-01-01 00:00:00;n/a\n"
	assert.NilError(t, ioutil.WriteFile(path, []byte(body), 0644))

	_, err = LoadColumn(path, "Last (MW)", 0)
	assert.Assert(t, err != nil)
}

func TestMax(t *testing.T) {
	assert.Equal(t, Max(component.Series{1, 3, 2}), component.Float(3))
	assert.Equal(t, Max(component.Series{-5, -1, -3}), component.Float(-1))
	assert.Equal(t, Max(component.Series{}), component.Float(0))
	assert.Equal(t, Max(nil), component.Float(0))
}

func TestNormalize(t *testing.T) {
	s := Normalize(component.Series{2, 4, 1})
	assert.Equal(t, s[0], component.Float(0.5))
	assert.Equal(t, s[1], component.Float(1))
	assert.Equal(t, s[2], component.Float(0.25))
}

func TestNormalizeAllZero(t *testing.T) {
	s := Normalize(component.Series{0, 0, 0})
	assert.DeepEqual(t, s, component.Series{0, 0, 0})
}

func TestNormalizeLeavesInputAlone(t *testing.T) {
	in := component.Series{2, 4}
	Normalize(in)
	assert.DeepEqual(t, in, component.Series{2, 4})
}

func TestUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := Uniform(rng, 300, 400, 100)
	assert.Equal(t, len(s), 100)
	for _, v := range s {
		assert.Assert(t, v >= 300 && v < 400)
	}
}

func TestUniformReproducible(t *testing.T) {
	s1 := Uniform(rand.New(rand.NewSource(7)), 300, 400, 24)
	s2 := Uniform(rand.New(rand.NewSource(7)), 300, 400, 24)
	assert.DeepEqual(t, s1, s2)
}

func TestWriterRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "profile")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "meter.csv")
	w, err := NewWriter(path, "Timestamp", []string{"P (MW)", "Q (MVar)"})
	assert.NilError(t, err)

	assert.NilError(t, w.Append("2019-01-01T00:00:00Z", []float64{1.5, 0.25}))
	assert.NilError(t, w.Append("2019-01-01T01:00:00Z", []float64{2, 0.5}))
	assert.NilError(t, w.Close())

	s, err := LoadColumn(path, "P (MW)", 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, s, component.Series{1.5, 2})

	s, err = LoadColumn(path, "Q (MVar)", 0)
	assert.NilError(t, err)
	assert.DeepEqual(t, s, component.Series{0.25, 0.5})
}

func TestWriterArityMismatch(t *testing.T) {
	dir, err := ioutil.TempDir("", "profile")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	w, err := NewWriter(filepath.Join(dir, "meter.csv"), "Timestamp", []string{"P (MW)"})
	assert.NilError(t, err)
	defer w.Close()

	assert.Assert(t, w.Append("2019-01-01T00:00:00Z", []float64{1, 2}) != nil)
}

func TestWriterNoColumns(t *testing.T) {
	_, err := NewWriter("meter.csv", "Timestamp", nil)
	assert.Assert(t, err != nil)
}
