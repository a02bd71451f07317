// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package github

import (
	"fmt"
	"io"
	"strings"
)

// Workflow commands are lines written to standard output that the Actions
// runner turns into annotations.

// Errorf writes an error annotation for file. If file is empty, the
// annotation is not attached to a file.
func Errorf(w io.Writer, file, format string, args ...any) {
	command(w, "error", file, fmt.Sprintf(format, args...))
}

// Warningf writes a warning annotation for file.
func Warningf(w io.Writer, file, format string, args ...any) {
	command(w, "warning", file, fmt.Sprintf(format, args...))
}

// Noticef writes a notice annotation for file.
func Noticef(w io.Writer, file, format string, args ...any) {
	command(w, "notice", file, fmt.Sprintf(format, args...))
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func command(w io.Writer, name, file, msg string) {
	var props string
	if file != "" {
		props = " file=" + propertyEscaper.Replace(file)
	}
	fmt.Fprintf(w, "::%s%s::%s\n", name, props, dataEscaper.Replace(msg))
}
