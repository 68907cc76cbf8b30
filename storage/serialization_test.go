package storage

import (
	"math"
	"testing"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorMUS_Layout(t *testing.T) {
	v := []float32{1, -2.5}
	data := MarshalVector(v)

	// varint length, then each float32 as 4 little-endian bytes
	assert.Equal(t, []byte{
		0x02,
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x20, 0xc0,
	}, data)
	assert.Equal(t, VectorMUS.Size(v), len(data))

	decoded, err := UnmarshalVector(data)
	require.NoError(t, err)
	assert.Equal(t, v, decoded)
}

func TestVectorMUS_SpecialValues(t *testing.T) {
	v := []float32{0, float32(math.Copysign(0, -1)), math.MaxFloat32, math.SmallestNonzeroFloat32}
	decoded, err := UnmarshalVector(MarshalVector(v))
	require.NoError(t, err)
	for i := range v {
		assert.Equal(t, math.Float32bits(v[i]), math.Float32bits(decoded[i]), "index %d", i)
	}
}

func TestVectorMUS_Empty(t *testing.T) {
	data := MarshalVector(nil)
	assert.Equal(t, []byte{0}, data)

	decoded, err := UnmarshalVector(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestVectorMUS_LongLengthPrefix(t *testing.T) {
	v := make([]float32, 300) // length needs a two byte varint
	data := MarshalVector(v)
	assert.Len(t, data, 2+4*300)

	n, err := VectorMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
}

func TestVectorMUS_Skip(t *testing.T) {
	first := MarshalVector([]float32{1, 2, 3})
	second := MarshalVector([]float32{4})
	data := append(first, second...)

	n, err := VectorMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(first), n)

	decoded, m, err := VectorMUS.Unmarshal(data[n:])
	require.NoError(t, err)
	assert.Equal(t, len(second), m)
	assert.Equal(t, []float32{4}, decoded)
}

func TestVectorMUS_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    error
		wantMUS error
	}{
		{"empty data", []byte{}, ErrTruncatedData, mus.ErrTooSmallByteSlice},
		{"truncated payload", []byte{2, 0, 0, 128, 63}, ErrTruncatedData, mus.ErrTooSmallByteSlice},
		{"unterminated length", []byte{0x80}, ErrTruncatedData, mus.ErrTooSmallByteSlice},
		{"oversized length", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, ErrSerializationFailed, com.ErrTooLargeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := UnmarshalVector(tt.data)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.wantMUS)

			_, err = VectorMUS.Skip(tt.data)
			assert.Error(t, err)
		})
	}
}
