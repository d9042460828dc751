// Package demo runs the three dispatch styles side by side over a roster.
package demo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/olehluchkiv/anyspeak/internal/anyspeak"
	"github.com/olehluchkiv/anyspeak/internal/roster"
	"github.com/olehluchkiv/anyspeak/internal/speak"
)

// Options controls output formatting.
type Options struct {
	Color bool // bold section headers
}

// Run writes the static, hand-built and built-in dispatch sections to w.
func Run(w io.Writer, animals []roster.Animal, opts Options, logger *slog.Logger) error {
	logger = logger.With("component", "demo")

	if err := header(w, "static dispatch", opts); err != nil {
		return err
	}
	speak.Cat{}.Speak(w)
	speak.Dog{}.Speak(w)

	if err := header(w, "hand-built dispatch", opts); err != nil {
		return err
	}
	// One variable, reassigned for every animal.
	var h anyspeak.Handle
	for _, a := range animals {
		h = a.Handle
		logger.Debug("dispatch via handle", "kind", a.Kind, "table", h.Table().TypeName())
		h.Speak(w)
	}

	if err := header(w, "built-in dispatch", opts); err != nil {
		return err
	}
	var s speak.Speaker
	for _, a := range animals {
		s = a.Speaker
		logger.Debug("dispatch via interface", "kind", a.Kind, "type", fmt.Sprintf("%T", s))
		s.Speak(w)
	}

	logger.Info("demo complete", "animals", len(animals))
	return nil
}

func header(w io.Writer, title string, opts Options) error {
	var err error
	if opts.Color {
		_, err = fmt.Fprintf(w, "\x1b[1m== %s ==\x1b[0m\n", title)
	} else {
		_, err = fmt.Fprintf(w, "== %s ==\n", title)
	}
	return err
}
