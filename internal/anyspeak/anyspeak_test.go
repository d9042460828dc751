package anyspeak

import (
	"bytes"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/anyspeak/internal/speak"
)

func said(h Handle) string {
	var buf bytes.Buffer
	h.Speak(&buf)
	return buf.String()
}

func direct(s speak.Speaker) string {
	var buf bytes.Buffer
	s.Speak(&buf)
	return buf.String()
}

func TestHandle_MatchesDirectCall(t *testing.T) {
	cat := speak.Cat{}
	dog := speak.Dog{}
	thin := speak.ThinDog{Age: 3}
	pup := speak.Puppy{Name: "rex"}

	assert.Equal(t, direct(cat), said(New(&cat)))
	assert.Equal(t, direct(dog), said(New(&dog)))
	assert.Equal(t, direct(thin), said(New(&thin)))
	assert.Equal(t, direct(&pup), said(New(&pup)))
}

func TestHandle_CatAndDogSounds(t *testing.T) {
	assert.Equal(t, "meowww\n", said(New(&speak.Cat{})))
	assert.Equal(t, "WOOF\n", said(New(&speak.Dog{})))
}

func TestHandle_Reassign(t *testing.T) {
	h := New(&speak.Cat{})
	assert.Equal(t, "meowww\n", said(h))

	h = New(&speak.Dog{})
	assert.Equal(t, "WOOF\n", said(h))
	assert.Equal(t, "speak.Dog", h.Table().TypeName())
}

func TestHandle_IndependentInstances(t *testing.T) {
	cat := New(&speak.Cat{})
	dog := New(&speak.Dog{})

	assert.Equal(t, "WOOF\n", said(dog))
	assert.Equal(t, "meowww\n", said(cat))
	assert.Equal(t, "WOOF\n", said(dog))
	assert.NotSame(t, cat.Table(), dog.Table())
}

func TestTableFor_SharedPerType(t *testing.T) {
	a := speak.ThinDog{Age: 1}
	b := speak.ThinDog{Age: 9}

	ha := New(&a)
	hb := New(&b)
	assert.Same(t, ha.Table(), hb.Table())
	assert.Same(t, ha.Table(), TableFor[speak.ThinDog]())
	assert.Equal(t, "wof\n", said(ha))
	assert.Equal(t, "wof\n", said(hb))
}

func TestTableFor_ConcurrentFirstUse(t *testing.T) {
	type local struct{ speak.Dog }

	const n = 16
	got := make([]*Table, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = TableFor[local]()
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestHandle_BorrowsReferent(t *testing.T) {
	pup := speak.Puppy{Name: "rex"}
	h := New(&pup)
	assert.Equal(t, "yip (rex)\n", said(h))

	pup.Name = "fido"
	assert.Equal(t, "yip (fido)\n", said(h))
}

func TestHandle_KeepsReferentAlive(t *testing.T) {
	mk := func() Handle {
		p := &speak.Puppy{Name: "ghost"}
		return New(p)
	}
	h := mk()
	runtime.GC()
	assert.Equal(t, "yip (ghost)\n", said(h))
}

func TestNew_NilPanics(t *testing.T) {
	var cat *speak.Cat
	assert.Panics(t, func() { New(cat) })
}

func TestHandle_IsZero(t *testing.T) {
	var h Handle
	assert.True(t, h.IsZero())
	require.Nil(t, h.Table())

	h = New(&speak.Cat{})
	assert.False(t, h.IsZero())
	assert.Equal(t, "speak.Cat", h.Table().TypeName())
}
