// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package license

import (
	"fmt"
	"strings"
	"time"
)

// CommentStyle describes how a header is wrapped into comments.
type CommentStyle int

const (
	// SlashStyle prefixes each line with "//".
	SlashStyle CommentStyle = iota
	// HashStyle prefixes each line with "#".
	HashStyle
	// BlockStyle wraps the header in a single "/* ... */" block.
	BlockStyle
)

var styles = map[string]CommentStyle{
	".go":    SlashStyle,
	".dart":  SlashStyle,
	".rs":    SlashStyle,
	".kt":    SlashStyle,
	".swift": SlashStyle,
	".proto": SlashStyle,

	".js":   BlockStyle,
	".ts":   BlockStyle,
	".java": BlockStyle,
	".c":    BlockStyle,
	".h":    BlockStyle,
	".cc":   BlockStyle,
	".cpp":  BlockStyle,
	".css":  BlockStyle,

	".py":   HashStyle,
	".sh":   HashStyle,
	".rb":   HashStyle,
	".yaml": HashStyle,
	".yml":  HashStyle,
	".tf":   HashStyle,
	".bzl":  HashStyle,
}

// StyleFor returns the comment style used for files with extension ext
// (including the leading dot).
func StyleFor(ext string) (CommentStyle, bool) {
	s, ok := styles[strings.ToLower(ext)]
	return s, ok
}

// Header renders the copyright line for year and the license notice as a
// comment in the given style, followed by an empty line. A year outside of
// 2000-2099 would not match [CopyrightPattern] and is replaced with the
// current year.
func Header(year int, style CommentStyle) string {
	if year < 2000 || year > 2099 {
		year = time.Now().Year()
	}
	lines := append([]string{fmt.Sprintf("Copyright %d Google LLC", year), ""}, strings.Split(Template, "\n")...)

	var sb strings.Builder
	switch style {
	case BlockStyle:
		sb.WriteString("/*\n")
		writePrefixed(&sb, lines, " *")
		sb.WriteString(" */\n")
	case HashStyle:
		writePrefixed(&sb, lines, "#")
	default:
		writePrefixed(&sb, lines, "//")
	}
	sb.WriteString("\n")
	return sb.String()
}

func writePrefixed(sb *strings.Builder, lines []string, prefix string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		if line != "" {
			sb.WriteString(" ")
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
}
