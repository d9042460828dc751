package sound

import "io"

type Speaker interface {
	Speak(w io.Writer)
}
