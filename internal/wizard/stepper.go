// Package wizard implements the multi-step quote and checkout forms.
package wizard

// Field is a named form value as submitted by the client.
type Field struct {
	Name  string
	Value string
}

// Stepper keeps a 1-based step index clamped to [1, last].
type Stepper struct {
	step int
	last int
}

func NewStepper(last int) Stepper {
	if last < 1 {
		last = 1
	}
	return Stepper{step: 1, last: last}
}

func (s Stepper) Current() int  { return s.step }
func (s Stepper) Last() int     { return s.last }
func (s Stepper) IsFinal() bool { return s.step == s.last }

// Next moves forward and reports whether the step changed.
func (s *Stepper) Next() bool {
	if s.step >= s.last {
		return false
	}
	s.step++
	return true
}

// Prev moves back and reports whether the step changed.
func (s *Stepper) Prev() bool {
	if s.step <= 1 {
		return false
	}
	s.step--
	return true
}

func (s *Stepper) Reset() { s.step = 1 }
