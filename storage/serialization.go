// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"errors"
	"fmt"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	slops "github.com/mus-format/mus-go/options/slice"
	"github.com/mus-format/mus-go/raw"
)

// maxVectorLength bounds decoded lengths so corrupt data cannot trigger
// huge allocations.
const maxVectorLength = 1 << 20

// VectorMUS serializes embedding vectors as a varint length followed by
// little-endian IEEE-754 float32 values.
var VectorMUS = ord.NewValidSliceSer[float32](raw.Float32,
	slops.WithLenValidator[float32](com.ValidatorFn[int](validateVectorLength)))

var _ mus.Serializer[[]float32] = VectorMUS

func validateVectorLength(length int) error {
	if length > maxVectorLength {
		return fmt.Errorf("%w: vector length %d exceeds %d", com.ErrTooLargeLength, length, maxVectorLength)
	}
	return nil
}

// MarshalVector serializes a vector to bytes.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, VectorMUS.Size(v))
	VectorMUS.Marshal(v, buf)
	return buf
}

// UnmarshalVector deserializes a vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	v, _, err := VectorMUS.Unmarshal(data)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, mus.ErrTooSmallByteSlice):
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
}
