package lsp

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/armature-dev/armature/internal/descriptor"
)

// completionRegion classifies where in a declaration the cursor sits,
// which decides the vocabulary offered.
type completionRegion int

const (
	// regionConfig is the config object: offer recognized config keys.
	regionConfig completionRegion = iota

	// regionMetadata is inside an open .meta(...) call: offer metadata keys.
	regionMetadata

	// regionConstructor is right after "f.": offer field constructors.
	regionConstructor
)

// constructorPrefix matches a field constructor being typed, e.g. "f."
// or "f.str" immediately before the cursor.
var constructorPrefix = regexp.MustCompile(`\bf\.\w*$`)

// handleTextDocumentCompletion handles completion requests
func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse completion params")
	}

	docURI := string(params.TextDocument.URI)
	content, ok := s.documentContent(docURI)
	if !ok {
		return reply(ctx, protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil)
	}

	region := regionAt(content, int(params.Position.Line), int(params.Position.Character))
	s.logger.Printf("Completion at %s %d:%d (region %d)", docURI, params.Position.Line, params.Position.Character, region)

	return reply(ctx, protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(region),
	}, nil)
}

// regionAt decides which vocabulary applies at a cursor position by
// scanning the text before it.
func regionAt(content string, line, character int) completionRegion {
	prefix := textBefore(content, line, character)
	if constructorPrefix.MatchString(prefix) {
		return regionConstructor
	}
	if insideMeta(prefix) {
		return regionMetadata
	}
	return regionConfig
}

// insideMeta reports whether the last ".meta(" before the cursor is
// still open.
func insideMeta(prefix string) bool {
	idx := strings.LastIndex(prefix, ".meta(")
	if idx < 0 {
		return false
	}
	depth := 0
	for _, r := range prefix[idx:] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth > 0
}

// textBefore returns the document text up to the given position.
// Positions past the end of a line or the document are clamped.
func textBefore(content string, line, character int) string {
	lines := strings.SplitAfter(content, "\n")
	if line < 0 {
		return ""
	}
	if line >= len(lines) {
		return content
	}

	var b strings.Builder
	for i := 0; i < line; i++ {
		b.WriteString(lines[i])
	}
	cur := lines[line]
	if character < 0 {
		character = 0
	}
	if character > len(cur) {
		character = len(cur)
	}
	b.WriteString(cur[:character])
	return b.String()
}

// completionItems builds the item list for a region
func completionItems(region completionRegion) []protocol.CompletionItem {
	switch region {
	case regionConstructor:
		names := descriptor.ConstructorNames()
		items := make([]protocol.CompletionItem, 0, len(names))
		for _, name := range names {
			items = append(items, protocol.CompletionItem{
				Label:            name,
				Kind:             protocol.CompletionItemKindFunction,
				Detail:           "field constructor",
				InsertText:       name + "()",
				InsertTextFormat: protocol.InsertTextFormatPlainText,
			})
		}
		return items

	case regionMetadata:
		return keyItems(descriptor.MetadataKeys(), "metadata key")

	default:
		return keyItems(descriptor.ConfigKeys(), "config key")
	}
}

// keyItems builds property-style completion items for object keys
func keyItems(keys []string, detail string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, protocol.CompletionItem{
			Label:            key,
			Kind:             protocol.CompletionItemKindProperty,
			Detail:           detail,
			InsertText:       key + ": ",
			InsertTextFormat: protocol.InsertTextFormatPlainText,
		})
	}
	return items
}
