package textvec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"iphone", "15", "pro", "max"}, Tokenize("iPhone 15 Pro-Max"))
	assert.Equal(t, []string{"essence", "mascara"}, Tokenize("Essence Mascara a"))
	assert.Empty(t, Tokenize("  ! ?"))
}

func TestFit_SmoothedIDF(t *testing.T) {
	s := Fit([]string{"red shoe", "blue shoe"})

	require.Equal(t, 3, s.Size())
	// shoe appears in both documents: ln(3/3)+1 = 1.
	assert.InDelta(t, 1.0, s.idf["shoe"], 1e-12)
	// red appears once: ln(3/2)+1.
	assert.InDelta(t, math.Log(1.5)+1, s.idf["red"], 1e-12)
}

func TestTransform_Normalised(t *testing.T) {
	s := Fit([]string{"red shoe", "blue shoe", "green lamp"})
	v := s.Transform("red red shoe")

	var norm float64
	for _, w := range v {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-12)
	assert.Greater(t, v["red"], v["shoe"])
}

func TestTransform_IgnoresUnknownTerms(t *testing.T) {
	s := Fit([]string{"red shoe"})

	assert.Nil(t, s.Transform("purple hat"))

	v := s.Transform("red hat")
	require.Len(t, v, 1)
	assert.InDelta(t, 1.0, v["red"], 1e-12)
}

func TestCosine(t *testing.T) {
	_, vecs := FitTransform([]string{"red shoe", "red shoe", "green lamp", ""})

	assert.InDelta(t, 1.0, Cosine(vecs[0], vecs[1]), 1e-12)
	assert.InDelta(t, 0.0, Cosine(vecs[0], vecs[2]), 1e-12)
	assert.Equal(t, 0.0, Cosine(vecs[0], vecs[3]))
	assert.Equal(t, 0.0, Cosine(vecs[3], vecs[3]))
	assert.InDelta(t, 1.0, CosineDistance(vecs[0], vecs[2]), 1e-12)
}

func TestCosine_Symmetric(t *testing.T) {
	_, vecs := FitTransform([]string{"wireless red mouse", "red gaming mouse pad", "mouse"})

	for i := range vecs {
		for j := range vecs {
			assert.InDelta(t, Cosine(vecs[i], vecs[j]), Cosine(vecs[j], vecs[i]), 1e-12)
		}
	}
}

func TestCosine_RepeatableAcrossCalls(t *testing.T) {
	_, v := FitTransform([]string{
		"w09 w15 w08 w17 w20 w18 w25 w04 w27",
		"zz w29 w17 w17 w25 w10 w27 w00 w18 w04 w11",
		"oak desk lamp",
	})

	want := Cosine(v[0], v[1])
	for i := 0; i < 500; i++ {
		require.Equal(t, want, Cosine(v[0], v[1]), "call %d", i)
		require.Equal(t, want, Cosine(v[1], v[0]), "call %d", i)
	}
}
