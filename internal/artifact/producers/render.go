// Package producers supplies the default artifact producer set. Every
// producer renders one TypeScript file for the admin app from the
// extracted descriptor, re-emitting uninterpreted declaration source
// verbatim where it appears.
package producers

import (
	"bytes"
	"fmt"

	"github.com/armature-dev/armature/internal/descriptor"
)

// gen accumulates generated source with tab indentation
type gen struct {
	buf    bytes.Buffer
	indent int
}

// writeLine writes a formatted line with proper indentation
func (g *gen) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// in increases the indentation level
func (g *gen) in() { g.indent++ }

// out decreases the indentation level
func (g *gen) out() {
	if g.indent > 0 {
		g.indent--
	}
}

// String returns the accumulated source
func (g *gen) String() string {
	return g.buf.String()
}

// banner writes the generated-file header
func (g *gen) banner(desc *descriptor.Descriptor) {
	g.writeLine("// Code generated by armature from %s. DO NOT EDIT.", desc.File)
	g.writeLine("")
}

// quote renders a double-quoted TypeScript string literal
func quote(s string) string {
	return descriptor.Str(s).Source()
}
