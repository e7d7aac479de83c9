package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting C text.
type emitter struct {
	w      io.Writer
	err    error // first write error
	indent int   // current indentation level
}

// emit writes an indented formatted line to the output.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "%s"+format+"\n", append([]interface{}{strings.Repeat("    ", e.indent)}, args...)...)
}

// emitRaw writes a formatted string without indentation or newline.
func (e *emitter) emitRaw(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// open emits a line ending in an opening brace and indents.
func (e *emitter) open(format string, args ...interface{}) {
	e.emit(format+" {", args...)
	e.indent++
}

// close dedents and emits the closing brace.
func (e *emitter) close() {
	e.indent--
	e.emit("}")
}
