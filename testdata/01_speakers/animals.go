package animals

import (
	"fmt"
	"io"
)

type Speaker interface {
	Speak(w io.Writer)
}

type Cat struct{}

func (Cat) Speak(w io.Writer) { fmt.Fprintln(w, "meowww") }

type Dog struct{}

func (Dog) Speak(w io.Writer) { fmt.Fprintln(w, "WOOF") }

type ThinDog struct {
	Age int
}

func (ThinDog) Speak(w io.Writer) { fmt.Fprintln(w, "wof") }

type Fish struct{} // no Speak

type quietCat struct{}

func (quietCat) Speak(w io.Writer) {}
