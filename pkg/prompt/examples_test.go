package prompt_test

import (
	"testing"

	"github.com/germanamz/quill/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExamples_UnmarshalMappingKeepsOrder(t *testing.T) {
	src := `
zeta: last letter
alpha: first letter
mid: middle
`
	var ex prompt.Examples
	require.NoError(t, yaml.Unmarshal([]byte(src), &ex))

	assert.Equal(t, prompt.Examples{
		{Input: "zeta", Output: "last letter"},
		{Input: "alpha", Output: "first letter"},
		{Input: "mid", Output: "middle"},
	}, ex)
}

func TestExamples_UnmarshalSequence(t *testing.T) {
	src := `
- input: teh
  output: the
- input: recieve
  output: receive
`
	var ex prompt.Examples
	require.NoError(t, yaml.Unmarshal([]byte(src), &ex))

	assert.Equal(t, prompt.Examples{
		{Input: "teh", Output: "the"},
		{Input: "recieve", Output: "receive"},
	}, ex)
}

func TestExamples_UnmarshalNull(t *testing.T) {
	var doc struct {
		Examples prompt.Examples `yaml:"examples"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("examples: ~\n"), &doc))
	assert.Empty(t, doc.Examples)
}

func TestExamples_UnmarshalRejectsScalar(t *testing.T) {
	var doc struct {
		Examples prompt.Examples `yaml:"examples"`
	}
	err := yaml.Unmarshal([]byte("examples: nope\n"), &doc)
	assert.ErrorContains(t, err, "expected a mapping")
}

func TestExamples_MarshalRoundTripOrder(t *testing.T) {
	ex := prompt.Examples{
		{Input: "beta", Output: "two"},
		{Input: "alpha", Output: "one"},
	}

	data, err := yaml.Marshal(ex)
	require.NoError(t, err)
	assert.Equal(t, "beta: two\nalpha: one\n", string(data))

	var back prompt.Examples
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, ex, back)
}

func TestExamples_SetReplacesInPlace(t *testing.T) {
	ex := prompt.Examples{}.Set("a", "1").Set("b", "2").Set("a", "3")

	assert.Equal(t, prompt.Examples{
		{Input: "a", Output: "3"},
		{Input: "b", Output: "2"},
	}, ex)
}
