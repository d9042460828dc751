package speak

import (
	"fmt"
	"io"
)

// Speaker is the single capability: anything that can make its sound on w.
type Speaker interface {
	Speak(w io.Writer)
}

// Cat is an empty marker type.
type Cat struct{}

func (Cat) Speak(w io.Writer) { fmt.Fprintln(w, "meowww") }

// Dog is an empty marker type.
type Dog struct{}

func (Dog) Speak(w io.Writer) { fmt.Fprintln(w, "WOOF") }

// ThinDog carries state, so its layout differs from Cat and Dog.
type ThinDog struct {
	Age int
}

func (d ThinDog) Speak(w io.Writer) { fmt.Fprintln(w, "wof") }

// HumanYears returns the dog's age in human years.
func (d ThinDog) HumanYears() int { return d.Age * 7 }

// Puppy only satisfies Speaker through a pointer.
type Puppy struct {
	Name string
}

func (p *Puppy) Speak(w io.Writer) { fmt.Fprintf(w, "yip (%s)\n", p.Name) }

// Kind names accepted by roster files.
const (
	KindCat     = "cat"
	KindDog     = "dog"
	KindThinDog = "thindog"
	KindPuppy   = "puppy"
)

// Kinds returns every known kind name in declaration order.
func Kinds() []string {
	return []string{KindCat, KindDog, KindThinDog, KindPuppy}
}

// IsKind reports whether name is a known kind.
func IsKind(name string) bool {
	for _, k := range Kinds() {
		if k == name {
			return true
		}
	}
	return false
}
