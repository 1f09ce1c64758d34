package mmapfile

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPODAccepts(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[byte](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[complex128](),
		reflect.TypeFor[[16]uint32](),
		reflect.TypeFor[point](),
		reflect.TypeFor[sample](),
		reflect.TypeFor[struct {
			Inner [4]struct{ A, B uint16 }
		}](),
	}
	for _, rt := range types {
		assert.NoError(t, checkPOD(rt), "%s", rt)
	}
}

func TestCheckPODRejects(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[*int](),
		reflect.TypeFor[string](),
		reflect.TypeFor[[]byte](),
		reflect.TypeFor[map[int]int](),
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[any](),
		reflect.TypeFor[bool](),
		reflect.TypeFor[struct{ P *point }](),
		reflect.TypeFor[struct{ S []float32 }](),
		reflect.TypeFor[[8]bool](),
		reflect.TypeFor[struct{}](),
	}
	for _, rt := range types {
		err := checkPOD(rt)
		var notPOD *ErrNotPOD
		assert.ErrorAs(t, err, &notPOD, "%s", rt)
	}
}

func TestCreateRejectsNonPOD(t *testing.T) {
	_, err := Create[struct{ Name string }](tmpPath(t), 4)
	var notPOD *ErrNotPOD
	require.ErrorAs(t, err, &notPOD)
	assert.Contains(t, notPOD.Reason, "Name")
}

func TestTypeTagStructural(t *testing.T) {
	type a struct{ X, Y int32 }
	type b struct{ U, V int32 }
	assert.Equal(t, typeTag(reflect.TypeFor[a]()), typeTag(reflect.TypeFor[b]()),
		"identical layouts share a tag regardless of names")

	type c struct{ X, Y int64 }
	assert.NotEqual(t, typeTag(reflect.TypeFor[a]()), typeTag(reflect.TypeFor[c]()),
		"different widths yield different tags")

	assert.NotEqual(t, typeTag(reflect.TypeFor[uint32]()), typeTag(reflect.TypeFor[int32]()))
	assert.NotEqual(t, typeTag(reflect.TypeFor[[2]uint16]()), typeTag(reflect.TypeFor[uint32]()))
}

func TestTypeTagExamples(t *testing.T) {
	assert.Equal(t, "u64@8", typeTag(reflect.TypeFor[uint64]()))
	assert.Equal(t, "[3]f32@12", typeTag(reflect.TypeFor[[3]float32]()))
	assert.Equal(t, "{0:i32,4:i32}@8", typeTag(reflect.TypeFor[point]()))
}
