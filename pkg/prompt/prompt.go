// Package prompt builds the structured few-shot payload sent to the model.
//
// A payload is a flat, ordered list of labeled parts:
//
//	instruction: <instruction>      (only when an instruction is set)
//	input: <example input>          (repeated per example, in order)
//	output: <example output>
//	input: <text to rewrite>
//	output:                         (always last, left empty for the model)
package prompt

import "strings"

// Label names the role a part plays in the payload.
type Label string

// Part labels.
const (
	Instruction Label = "instruction"
	Input       Label = "input"
	Output      Label = "output"
)

// Part is one labeled entry of a payload.
type Part struct {
	Label Label
	Text  string
}

// String renders the part the way the model receives it, e.g. "input: hello".
func (p Part) String() string {
	return string(p.Label) + ": " + p.Text
}

// Payload is the ordered list of parts for one request.
type Payload []Part

// Strings renders every part in order.
func (p Payload) Strings() []string {
	out := make([]string, len(p))
	for i, part := range p {
		out[i] = part.String()
	}
	return out
}

// String joins the rendered parts with newlines. Used for debug logging.
func (p Payload) String() string {
	return strings.Join(p.Strings(), "\n")
}

// Build assembles a payload. The instruction part is emitted only when
// instruction is non-empty; examples are replayed in order; the payload always
// ends with the real input followed by an empty output part.
func Build(instruction string, examples Examples, input string) Payload {
	p := make(Payload, 0, 3+2*len(examples))

	if instruction != "" {
		p = append(p, Part{Label: Instruction, Text: instruction})
	}

	for _, ex := range examples {
		p = append(p,
			Part{Label: Input, Text: ex.Input},
			Part{Label: Output, Text: ex.Output},
		)
	}

	return append(p,
		Part{Label: Input, Text: input},
		Part{Label: Output},
	)
}
