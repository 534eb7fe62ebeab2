package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(Definition{
		Name: "SentenceOnly",
		New:  func() Validator { return &sentenceOnly{NewBase("SentenceOnly")} },
	})
	r.Register(Definition{
		Name: "ParagraphOnly",
		New:  func() Validator { return &paragraphOnly{NewBase("ParagraphOnly")} },
	})
	return r
}

func TestRegistry_New(t *testing.T) {
	r := newTestRegistry()

	v, err := r.New("SentenceOnly")
	require.NoError(t, err)
	assert.Equal(t, "SentenceOnly", v.Name())

	v, err = r.New("sentenceonly")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, "SentenceOnly", v.Name())

	a, _ := r.New("SentenceOnly")
	b, _ := r.New("SentenceOnly")
	assert.NotSame(t, a, b, "each call returns a fresh instance")
}

func TestRegistry_Unknown(t *testing.T) {
	r := newTestRegistry()

	_, err := r.New("DoesNotExist")
	var unk *UnknownValidatorError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "DoesNotExist", unk.Name)
	assert.Equal(t, []string{"ParagraphOnly", "SentenceOnly"}, unk.Available)
}

func TestRegistry_RegisterPanics(t *testing.T) {
	r := newTestRegistry()
	newFn := func() Validator { return &none{} }

	assert.Panics(t, func() { r.Register(Definition{Name: "sentenceONLY", New: newFn}) })
	assert.Panics(t, func() { r.Register(Definition{Name: " ", New: newFn}) })
	assert.Panics(t, func() { r.Register(Definition{Name: "NoCtor"}) })
}

func TestRegistry_Definitions(t *testing.T) {
	r := newTestRegistry()
	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "ParagraphOnly", defs[0].Name)
	assert.Equal(t, "SentenceOnly", defs[1].Name)

	_, ok := r.Get("PARAGRAPHONLY")
	assert.True(t, ok)
}
