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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain types. Field order is part of
// the stored format; append new fields at the end only.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

// ConceptMUS serializes Concept records.
var ConceptMUS = conceptMUS{}

// BlogPostMUS serializes BlogPost records.
var BlogPostMUS = blogPostMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type conceptMUS struct{}

func (conceptMUS) Marshal(c Concept, bs []byte) int {
	n := IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Name, bs[n:])
	n += marshalIDSlice(c.BlogPostIds, bs[n:])
	n += marshalIDSlice(c.RelatedIds, bs[n:])
	n += marshalTime(c.InsertedAt, bs[n:])
	n += marshalTime(c.UpdatedAt, bs[n:])
	return n
}

func (conceptMUS) Unmarshal(bs []byte) (c Concept, n int, err error) {
	var k int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.Name, k, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + k, err
	}
	n += k
	if c.BlogPostIds, k, err = unmarshalIDSlice(bs[n:]); err != nil {
		return c, n + k, err
	}
	n += k
	if c.RelatedIds, k, err = unmarshalIDSlice(bs[n:]); err != nil {
		return c, n + k, err
	}
	n += k
	if c.InsertedAt, k, err = unmarshalTime(bs[n:]); err != nil {
		return c, n + k, err
	}
	n += k
	if c.UpdatedAt, k, err = unmarshalTime(bs[n:]); err != nil {
		return c, n + k, err
	}
	n += k
	return c, n, nil
}

func (conceptMUS) Size(c Concept) int {
	size := IDMUS.Size(c.Id)
	size += ord.String.Size(c.Name)
	size += sizeIDSlice(c.BlogPostIds)
	size += sizeIDSlice(c.RelatedIds)
	size += sizeTime(c.InsertedAt)
	size += sizeTime(c.UpdatedAt)
	return size
}

type blogPostMUS struct{}

func (blogPostMUS) Marshal(b BlogPost, bs []byte) int {
	n := IDMUS.Marshal(b.Id, bs)
	n += ord.String.Marshal(b.Title, bs[n:])
	n += ord.String.Marshal(b.Excerpt, bs[n:])
	n += ord.String.Marshal(b.Content, bs[n:])
	n += marshalIDSlice(b.ConceptIds, bs[n:])
	n += marshalIDSlice(b.RelatedIds, bs[n:])
	n += marshalVector(b.Vector, bs[n:])
	n += marshalTime(b.InsertedAt, bs[n:])
	n += marshalTime(b.UpdatedAt, bs[n:])
	return n
}

func (blogPostMUS) Unmarshal(bs []byte) (b BlogPost, n int, err error) {
	var k int
	if b.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if b.Title, k, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.Excerpt, k, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.Content, k, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.ConceptIds, k, err = unmarshalIDSlice(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.RelatedIds, k, err = unmarshalIDSlice(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.Vector, k, err = unmarshalVector(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.InsertedAt, k, err = unmarshalTime(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	if b.UpdatedAt, k, err = unmarshalTime(bs[n:]); err != nil {
		return b, n + k, err
	}
	n += k
	return b, n, nil
}

func (blogPostMUS) Size(b BlogPost) int {
	size := IDMUS.Size(b.Id)
	size += ord.String.Size(b.Title)
	size += ord.String.Size(b.Excerpt)
	size += ord.String.Size(b.Content)
	size += sizeIDSlice(b.ConceptIds)
	size += sizeIDSlice(b.RelatedIds)
	size += sizeVector(b.Vector)
	size += sizeTime(b.InsertedAt)
	size += sizeTime(b.UpdatedAt)
	return size
}

func marshalIDSlice(ids []ID, bs []byte) int {
	n := varint.PositiveInt.Marshal(len(ids), bs)
	for _, id := range ids {
		n += IDMUS.Marshal(id, bs[n:])
	}
	return n
}

func unmarshalIDSlice(bs []byte) ([]ID, int, error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	ids := make([]ID, length)
	for i := 0; i < length; i++ {
		id, k, err := IDMUS.Unmarshal(bs[n:])
		n += k
		if err != nil {
			return nil, n, err
		}
		ids[i] = id
	}
	return ids, n, nil
}

func sizeIDSlice(ids []ID) int {
	size := varint.PositiveInt.Size(len(ids))
	for _, id := range ids {
		size += IDMUS.Size(id)
	}
	return size
}

func marshalVector(v []float32, bs []byte) int {
	n := varint.PositiveInt.Marshal(len(v), bs)
	for _, val := range v {
		n += raw.Float32.Marshal(val, bs[n:])
	}
	return n
}

func unmarshalVector(bs []byte) ([]float32, int, error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v := make([]float32, length)
	for i := 0; i < length; i++ {
		val, k, err := raw.Float32.Unmarshal(bs[n:])
		n += k
		if err != nil {
			return nil, n, err
		}
		v[i] = val
	}
	return v, n, nil
}

func sizeVector(v []float32) int {
	return varint.PositiveInt.Size(len(v)) + len(v)*raw.Float32.Size(0)
}

// Timestamps are stored as Unix microseconds.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}
