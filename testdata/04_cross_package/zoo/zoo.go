package zoo

import (
	"fmt"
	"io"

	"example.com/crosspkg/sound"
)

var _ sound.Speaker = Lion{}

type Lion struct{}

func (Lion) Speak(w io.Writer) { fmt.Fprintln(w, "ROAR") }
