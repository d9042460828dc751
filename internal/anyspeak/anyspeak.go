// Package anyspeak implements a hand-built, type-erased handle to anything
// that satisfies speak.Speaker.
//
// A Handle is two words: an erased pointer to a borrowed value and a pointer
// to a dispatch Table built for that value's concrete type. Calling Speak on
// a Handle loads the thunk from the table and calls it with the erased
// pointer. There is no type tag and no runtime check on the call path; the
// only guarantee that table and referent agree is that New is the only way
// to build a Handle.
//
// The referent is kept alive by the garbage collector for as long as any
// Handle points to it, since unsafe.Pointer is traced.
package anyspeak

import (
	"io"
	"reflect"
	"sync"
	"unsafe"

	"github.com/olehluchkiv/anyspeak/internal/speak"
)

// Conforming is satisfied by *T whenever T, or *T, implements speak.Speaker.
type Conforming[T any] interface {
	*T
	speak.Speaker
}

// Table is the dispatch table for one concrete type. It holds exactly one
// entry and is never mutated after creation.
type Table struct {
	speak    func(data unsafe.Pointer, w io.Writer)
	typeName string
}

// TypeName returns the concrete type the table was built for. Dispatch never
// consults it.
func (t *Table) TypeName() string { return t.typeName }

// tables maps reflect.Type to *Table. Entries are never removed.
var tables sync.Map

// TableFor returns the table for T, creating it on first use. Every call
// for the same T returns the same pointer.
func TableFor[T any, PT Conforming[T]]() *Table {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if t, ok := tables.Load(key); ok {
		return t.(*Table)
	}
	t, _ := tables.LoadOrStore(key, &Table{
		speak: func(data unsafe.Pointer, w io.Writer) {
			PT(reinterpret[T](data)).Speak(w)
		},
		typeName: key.String(),
	})
	return t.(*Table)
}

// reinterpret is the only place an erased pointer is turned back into a
// typed one. It is sound only when data was produced from a *T.
func reinterpret[T any](data unsafe.Pointer) *T {
	return (*T)(data)
}

// Handle is a borrowed, type-erased reference to a speak.Speaker.
// The zero Handle has no referent and must not be spoken to.
type Handle struct {
	data unsafe.Pointer
	fns  *Table
}

// New erases v and binds it to the table for T. It panics if v is nil.
func New[T any, PT Conforming[T]](v *T) Handle {
	if v == nil {
		panic("anyspeak: New called with a nil pointer")
	}
	return Handle{
		data: unsafe.Pointer(v),
		fns:  TableFor[T, PT](),
	}
}

// Speak invokes the referent's Speak through the table.
func (h Handle) Speak(w io.Writer) {
	h.fns.speak(h.data, w)
}

// Table returns the dispatch table the handle was built with.
func (h Handle) Table() *Table { return h.fns }

// IsZero reports whether h was never constructed.
func (h Handle) IsZero() bool { return h.fns == nil }
