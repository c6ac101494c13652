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

// Package lang maps the Windows locale IDs (LCIDs) stored in .ilx files to
// languages and the code pages their text is stored in.
package lang

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownEncoding indicates that an encoding name is not recognized.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Language is a language supported by Interlex.
type Language struct {
	// ID is the Windows locale ID.
	ID uint16

	// Name is the language name, e.g. "English".
	Name string

	// Variety is the regional variety, e.g. "United States". It is empty
	// for languages with a single variety.
	Variety string

	// Encoding is the code page text in the language is stored in.
	Encoding *charmap.Charmap
}

// Label returns a human readable label, e.g. "English (United States)".
func (l Language) Label() string {
	if l.Variety == "" {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Variety)
}

// Unknown returns a placeholder for an unrecognized locale ID. Text is
// assumed to be stored in enc.
func Unknown(id uint16, enc *charmap.Charmap) Language {
	return Language{
		ID:       id,
		Name:     fmt.Sprintf("Unknown (LCID %d)", id),
		Encoding: enc,
	}
}

// Lookup returns the language for the given locale ID.
func Lookup(id uint16) (Language, bool) {
	l, ok := languages[id]
	if !ok {
		return Language{}, false
	}
	l.ID = id
	return l, true
}

// Encoding returns the single byte Windows or ISO code page with the given
// IANA name, e.g. "windows-1250".
func Encoding(name string) (*charmap.Charmap, error) {
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownEncoding, name, err)
	}
	// ianaindex returns nil for encodings it knows but does not implement.
	if e == nil {
		return nil, fmt.Errorf("%w: %q: unsupported", ErrUnknownEncoding, name)
	}
	cm, ok := e.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w: %q: not a single byte code page", ErrUnknownEncoding, name)
	}
	return cm, nil
}

// Decode decodes b from the code page enc to a UTF-8 string.
func Decode(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(out), nil
}

var (
	cp1250 = charmap.Windows1250
	cp1252 = charmap.Windows1252
)

// languages are the languages using code pages 1250 and 1252.
var languages = map[uint16]Language{
	1078:  {Name: "Afrikaans", Encoding: cp1252},
	1052:  {Name: "Albanian", Encoding: cp1250},
	1069:  {Name: "Basque", Encoding: cp1252},
	1027:  {Name: "Catalan", Encoding: cp1252},
	1050:  {Name: "Croatian", Encoding: cp1250},
	1029:  {Name: "Czech", Encoding: cp1250},
	1030:  {Name: "Danish", Encoding: cp1252},
	2067:  {Name: "Dutch", Variety: "Belgian", Encoding: cp1252},
	1043:  {Name: "Dutch", Variety: "Standard", Encoding: cp1252},
	3081:  {Name: "English", Variety: "Australian", Encoding: cp1252},
	4105:  {Name: "English", Variety: "Canadian", Encoding: cp1252},
	9225:  {Name: "English", Variety: "Caribbean", Encoding: cp1252},
	6153:  {Name: "English", Variety: "Ireland", Encoding: cp1252},
	8201:  {Name: "English", Variety: "Jamaica", Encoding: cp1252},
	5129:  {Name: "English", Variety: "New Zealand", Encoding: cp1252},
	7177:  {Name: "English", Variety: "South Africa", Encoding: cp1252},
	2057:  {Name: "English", Variety: "United Kingdom", Encoding: cp1252},
	1033:  {Name: "English", Variety: "United States", Encoding: cp1252},
	1035:  {Name: "Finnish", Encoding: cp1252},
	2060:  {Name: "French", Variety: "Belgian", Encoding: cp1252},
	3084:  {Name: "French", Variety: "Canadian", Encoding: cp1252},
	5132:  {Name: "French", Variety: "Luxembourg", Encoding: cp1252},
	1036:  {Name: "French", Variety: "Standard", Encoding: cp1252},
	4108:  {Name: "French", Variety: "Swiss", Encoding: cp1252},
	3079:  {Name: "German", Variety: "Austrian", Encoding: cp1252},
	5127:  {Name: "German", Variety: "Liechtenstein", Encoding: cp1252},
	4103:  {Name: "German", Variety: "Luxembourg", Encoding: cp1252},
	1031:  {Name: "German", Variety: "Standard", Encoding: cp1252},
	2055:  {Name: "German", Variety: "Swiss", Encoding: cp1252},
	1038:  {Name: "Hungarian", Encoding: cp1250},
	1039:  {Name: "Icelandic", Encoding: cp1252},
	1057:  {Name: "Indonesian", Encoding: cp1252},
	1040:  {Name: "Italian", Variety: "Standard", Encoding: cp1252},
	2064:  {Name: "Italian", Variety: "Swiss", Encoding: cp1252},
	1044:  {Name: "Norwegian", Variety: "Bokmal", Encoding: cp1252},
	2068:  {Name: "Norwegian", Variety: "Nynorsk", Encoding: cp1252},
	1045:  {Name: "Polish", Encoding: cp1250},
	1046:  {Name: "Portuguese", Variety: "Brazilian", Encoding: cp1252},
	2070:  {Name: "Portuguese", Variety: "Standard", Encoding: cp1252},
	1048:  {Name: "Romanian", Encoding: cp1250},
	2074:  {Name: "Serbian", Variety: "Latin", Encoding: cp1250},
	1051:  {Name: "Slovak", Encoding: cp1250},
	1060:  {Name: "Slovenian", Encoding: cp1250},
	11274: {Name: "Spanish", Variety: "Argentina", Encoding: cp1252},
	16394: {Name: "Spanish", Variety: "Bolivia", Encoding: cp1252},
	13322: {Name: "Spanish", Variety: "Chile", Encoding: cp1252},
	9226:  {Name: "Spanish", Variety: "Colombia", Encoding: cp1252},
	5130:  {Name: "Spanish", Variety: "Costa Rica", Encoding: cp1252},
	7178:  {Name: "Spanish", Variety: "Dominican Republic", Encoding: cp1252},
	12298: {Name: "Spanish", Variety: "Ecuador", Encoding: cp1252},
	17418: {Name: "Spanish", Variety: "El Salvador", Encoding: cp1252},
	4106:  {Name: "Spanish", Variety: "Guatemala", Encoding: cp1252},
	18442: {Name: "Spanish", Variety: "Honduras", Encoding: cp1252},
	3082:  {Name: "Spanish", Variety: "International Sort", Encoding: cp1252},
	2058:  {Name: "Spanish", Variety: "Mexico", Encoding: cp1252},
	19466: {Name: "Spanish", Variety: "Nicaragua", Encoding: cp1252},
	6154:  {Name: "Spanish", Variety: "Panama", Encoding: cp1252},
	15370: {Name: "Spanish", Variety: "Paraguay", Encoding: cp1252},
	10250: {Name: "Spanish", Variety: "Peru", Encoding: cp1252},
	20490: {Name: "Spanish", Variety: "Puerto Rico", Encoding: cp1252},
	1034:  {Name: "Spanish", Variety: "Traditional Sort", Encoding: cp1252},
	14346: {Name: "Spanish", Variety: "Uruguay", Encoding: cp1252},
	8202:  {Name: "Spanish", Variety: "Venezuela", Encoding: cp1252},
	1053:  {Name: "Swedish", Encoding: cp1252},
}
