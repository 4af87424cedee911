package convolutional

// Encoder is a stateful convolutional encoder for a Code. The zero value is
// not usable; create one with NewEncoder.
type Encoder struct {
	code  Code
	state State
}

// NewEncoder creates an encoder for code, starting in the zero state.
func NewEncoder(code Code) *Encoder {
	return &Encoder{code: code}
}

// Code returns the encoder's code.
func (e *Encoder) Code() Code {
	return e.code
}

// State returns the encoder's current trellis state.
func (e *Encoder) State() State {
	return e.state
}

// Output returns the output word for input bit u and advances the encoder
// to the next state.
func (e *Encoder) Output(u bool) Output {
	output := e.code.Output(e.state, u)
	e.state = e.code.NextState(e.state, u)
	return output
}

// TerminationOutput drives the encoder one step towards the zero state,
// using the termination input for the current state, and returns the
// resulting output word. After Mem() calls, the encoder's state is zero.
func (e *Encoder) TerminationOutput() Output {
	u := e.code.TerminationInput(e.state)
	output := e.code.Output(e.state, u)
	e.state = e.code.NextState(e.state, u)
	return output
}
