// Copyright 2025 Ian Lewis
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

package ilx

// Record is a decoded header or entry. Values are keyed by the field names
// of the layout. Reserved fields are not stored.
type Record struct {
	strings map[string][]byte
	ints    map[string]int64
}

func newRecord() *Record {
	return &Record{
		strings: map[string][]byte{},
		ints:    map[string]int64{},
	}
}

// Bytes returns the raw value of a string field. It returns nil if the
// record has no such string field.
func (r *Record) Bytes(name string) []byte {
	return r.strings[name]
}

// Int returns the value of an integer field. It returns zero if the record
// has no such integer field.
func (r *Record) Int(name string) int64 {
	return r.ints[name]
}

// Has returns true if the record has a value for the named field.
func (r *Record) Has(name string) bool {
	if _, ok := r.strings[name]; ok {
		return true
	}
	_, ok := r.ints[name]
	return ok
}
