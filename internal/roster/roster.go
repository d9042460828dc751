// Package roster loads the list of animals the demo speaks to.
package roster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/anyspeak/internal/anyspeak"
	"github.com/olehluchkiv/anyspeak/internal/speak"
)

// Entry describes one animal.
type Entry struct {
	Kind string `yaml:"kind"`
	Age  int    `yaml:"age,omitempty"`  // thindog only
	Name string `yaml:"name,omitempty"` // puppy only
}

// Roster is the parsed form of a roster file.
type Roster struct {
	Animals []Entry `yaml:"animals"`
}

const defaultPuppyName = "pup"

// Default returns a cat followed by a dog.
func Default() *Roster {
	return &Roster{Animals: []Entry{{Kind: speak.KindCat}, {Kind: speak.KindDog}}}
}

// Load reads and parses the roster file at path.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a roster from YAML. path is only used in error messages.
func Parse(data []byte, path string) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := r.validate(path); err != nil {
		return nil, err
	}
	r.setDefaults()
	return &r, nil
}

func (r *Roster) validate(path string) error {
	if len(r.Animals) == 0 {
		return fmt.Errorf("%s: no animals listed", path)
	}
	var errs []error
	for i, e := range r.Animals {
		kind := strings.ToLower(strings.TrimSpace(e.Kind))
		if !speak.IsKind(kind) {
			errs = append(errs, fmt.Errorf("%s: animals[%d]: unknown kind %q (valid: %s)",
				path, i, e.Kind, strings.Join(speak.Kinds(), ", ")))
			continue
		}
		if e.Age < 0 {
			errs = append(errs, fmt.Errorf("%s: animals[%d]: age must not be negative, got %d", path, i, e.Age))
		}
	}
	return errors.Join(errs...)
}

func (r *Roster) setDefaults() {
	for i := range r.Animals {
		e := &r.Animals[i]
		e.Kind = strings.ToLower(strings.TrimSpace(e.Kind))
		if e.Kind == speak.KindPuppy && e.Name == "" {
			e.Name = defaultPuppyName
		}
	}
}

// Animal is one constructed value seen two ways: as a built-in interface
// value and as a hand-built handle. Both refer to the same variable.
type Animal struct {
	Kind    string
	Speaker speak.Speaker
	Handle  anyspeak.Handle
}

// Build constructs the value described by e.
func (e Entry) Build() (Animal, error) {
	a := Animal{Kind: e.Kind}
	switch e.Kind {
	case speak.KindCat:
		v := &speak.Cat{}
		a.Speaker, a.Handle = v, anyspeak.New(v)
	case speak.KindDog:
		v := &speak.Dog{}
		a.Speaker, a.Handle = v, anyspeak.New(v)
	case speak.KindThinDog:
		v := &speak.ThinDog{Age: e.Age}
		a.Speaker, a.Handle = v, anyspeak.New(v)
	case speak.KindPuppy:
		v := &speak.Puppy{Name: e.Name}
		a.Speaker, a.Handle = v, anyspeak.New(v)
	default:
		return Animal{}, fmt.Errorf("unknown kind %q", e.Kind)
	}
	return a, nil
}

// Build constructs every entry in order.
func (r *Roster) Build() ([]Animal, error) {
	out := make([]Animal, 0, len(r.Animals))
	for i, e := range r.Animals {
		a, err := e.Build()
		if err != nil {
			return nil, fmt.Errorf("animals[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
