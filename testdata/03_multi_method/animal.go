package animal

import "io"

type Speaker interface {
	Speak(w io.Writer)
	Age() int
}

type Dog struct {
	age int
}

func (Dog) Speak(w io.Writer) {}

func (d Dog) Age() int { return d.age }

type Parrot struct{}

func (Parrot) Speak(w io.Writer) {} // no Age
