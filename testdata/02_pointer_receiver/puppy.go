package puppy

import (
	"fmt"
	"io"
)

type Speaker interface {
	Speak(w io.Writer)
}

type Puppy struct {
	Name string
}

func (p *Puppy) Speak(w io.Writer) { fmt.Fprintf(w, "yip (%s)\n", p.Name) }
