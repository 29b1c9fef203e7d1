package prompt

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Example is a single few-shot pair.
type Example struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Examples is an ordered set of few-shot pairs keyed by input.
//
// In YAML it is written as a mapping of input to output; the key order of the
// mapping is the order in which the pairs are replayed. A list of
// {input, output} objects is accepted as well.
type Examples []Example

// Set adds or replaces the pair for input. A replaced pair keeps its position.
func (e Examples) Set(input, output string) Examples {
	for i := range e {
		if e[i].Input == input {
			e[i].Output = output
			return e
		}
	}
	return append(e, Example{Input: input, Output: output})
}

// UnmarshalYAML decodes a mapping or a list of pairs while keeping order.
func (e *Examples) UnmarshalYAML(value *yaml.Node) error {
	var out Examples

	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var in, o string
			if err := value.Content[i].Decode(&in); err != nil {
				return fmt.Errorf("examples: key at line %d: %w", value.Content[i].Line, err)
			}
			if err := value.Content[i+1].Decode(&o); err != nil {
				return fmt.Errorf("examples: value for %q: %w", in, err)
			}
			out = out.Set(in, o)
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			var ex Example
			if err := item.Decode(&ex); err != nil {
				return fmt.Errorf("examples: item at line %d: %w", item.Line, err)
			}
			out = out.Set(ex.Input, ex.Output)
		}
	case yaml.ScalarNode:
		if value.Tag != "!!null" {
			return fmt.Errorf("examples: line %d: expected a mapping, got %q", value.Line, value.Value)
		}
	default:
		return fmt.Errorf("examples: line %d: expected a mapping", value.Line)
	}

	*e = out
	return nil
}

// MarshalYAML encodes the pairs as an ordered mapping.
func (e Examples) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, ex := range e {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ex.Input},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ex.Output},
		)
	}
	return node, nil
}
