package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConcatenatesQueries(t *testing.T) {
	plan := Parse([]string{"Cat DOG", "bird, cat!"})
	assert.Equal(t, []string{"cat", "dog", "bird", "cat"}, plan.Terms)
	assert.Equal(t, []string{"Cat DOG", "bird, cat!"}, plan.RawQueries)
	assert.Equal(t, "Cat DOG | bird, cat!", plan.Display())
	assert.Equal(t, []string{"cat", "dog", "bird"}, plan.UniqueTerms())
}

func TestParseKeepsBooleanWordsAsTerms(t *testing.T) {
	plan := Parse([]string{"cats AND NOT dogs"})
	assert.Equal(t, []string{"cats", "and", "not", "dogs"}, plan.Terms)
}

func TestParsePunctuationOnly(t *testing.T) {
	plan := Parse([]string{"???"})
	assert.NotNil(t, plan.Terms)
	assert.Empty(t, plan.Terms)
	assert.Equal(t, "???", plan.Display())
}

func TestParseDoesNotAliasInput(t *testing.T) {
	in := []string{"one"}
	plan := Parse(in)
	in[0] = "changed"
	assert.Equal(t, []string{"one"}, plan.RawQueries)
}
