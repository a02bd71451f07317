// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package license checks that text starts with the required Apache License
// 2.0 notice and a Google LLC copyright line.
//
// Comparison of the notice body ignores comment markers, punctuation, line
// wrapping and case, so the same header is recognized in any comment syntax.
package license

import (
	"regexp"
	"strings"
)

// HeaderLines is the number of leading lines inspected by [HasValidHeader].
// A header that starts below this window is treated as absent.
const HeaderLines = 50

// Template is the canonical body of the Apache License 2.0 notice, as it
// appears in a source file header without comment markers.
const Template = `Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.`

// CopyrightPattern matches the required copyright line. Any year of the form
// 20xx is accepted.
var CopyrightPattern = regexp.MustCompile(`(?i)Copyright 20\d\d Google LLC`)

var normalizedTemplate = Normalize(Template)

// Normalize replaces every character that is not an ASCII letter or digit
// with a space, collapses runs of spaces, trims the result and lower-cases
// it.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		case 'A' <= c && c <= 'Z':
			c += 'a' - 'A'
		default:
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteByte(c)
	}
	return sb.String()
}

// Preview returns at most the first [HeaderLines] lines of text, joined by
// newlines.
func Preview(text string) string {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		n++
		if n == HeaderLines {
			return text[:i]
		}
	}
	return text
}

// HasCopyright reports whether the header preview of text contains a line
// matching [CopyrightPattern].
func HasCopyright(text string) bool {
	return CopyrightPattern.MatchString(Preview(text))
}

// HasValidHeader reports whether the header preview of text contains both
// the copyright line and the complete license notice.
func HasValidHeader(text string) bool {
	preview := Preview(text)
	if !CopyrightPattern.MatchString(preview) {
		return false
	}
	return strings.Contains(Normalize(preview), normalizedTemplate)
}
