package layout

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unsafe"

	"github.com/olehluchkiv/anyspeak/internal/anyspeak"
	"github.com/olehluchkiv/anyspeak/internal/speak"
)

// Entry is the in-memory size of one type.
type Entry struct {
	Name string
	Size uintptr
}

// Report lists the sizes of the implementors and of both dispatch forms.
// A Handle and a built-in interface value are both two words.
func Report() []Entry {
	var iface speak.Speaker
	return []Entry{
		{"speak.Cat", unsafe.Sizeof(speak.Cat{})},
		{"speak.Dog", unsafe.Sizeof(speak.Dog{})},
		{"speak.ThinDog", unsafe.Sizeof(speak.ThinDog{})},
		{"speak.Puppy", unsafe.Sizeof(speak.Puppy{})},
		{"speak.Speaker (interface)", unsafe.Sizeof(iface)},
		{"anyspeak.Handle", unsafe.Sizeof(anyspeak.Handle{})},
	}
}

// Write renders entries as an aligned two-column table.
func Write(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		if _, err := fmt.Fprintf(tw, "sizeof(%s)\t= %d\n", e.Name, e.Size); err != nil {
			return err
		}
	}
	return tw.Flush()
}
