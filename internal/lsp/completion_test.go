package lsp

import (
	"strings"
	"testing"

	"go.lsp.dev/protocol"
)

const declarationSource = `import { defineResource, f } from "../base";

export default defineResource({
  name: "invoice",
  icon: "file-text",
}, {
  number: f.string().meta({ sortable: true }),
  total: f.money(),
});
`

func TestRegionAt(t *testing.T) {
	tests := []struct {
		name      string
		line      int
		character int
		want      completionRegion
	}{
		{"config object", 4, 2, regionConfig},
		{"after constructor dot", 7, 11, regionConstructor},
		{"mid constructor name", 6, 15, regionConstructor},
		{"inside meta object", 6, 28, regionMetadata},
		{"after closed meta call", 6, 45, regionConfig},
		{"top of file", 0, 0, regionConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := regionAt(declarationSource, tt.line, tt.character)
			if got != tt.want {
				t.Errorf("regionAt(%d, %d) = %d, want %d", tt.line, tt.character, got, tt.want)
			}
		})
	}
}

func TestRegionAtClampsOutOfRange(t *testing.T) {
	// Positions past the document end still classify instead of panicking
	got := regionAt(declarationSource, 500, 500)
	if got != regionConfig {
		t.Errorf("regionAt past EOF = %d, want regionConfig", got)
	}

	got = regionAt("f.", 0, 999)
	if got != regionConstructor {
		t.Errorf("regionAt with clamped character = %d, want regionConstructor", got)
	}
}

func TestInsideMeta(t *testing.T) {
	tests := []struct {
		prefix string
		want   bool
	}{
		{"number: f.string().meta({ ", true},
		{"number: f.string().meta({ sortable: true })", false},
		{"number: f.string()", false},
		{"", false},
		{".meta(", true},
		{".meta({ options: [", true},
	}

	for _, tt := range tests {
		if got := insideMeta(tt.prefix); got != tt.want {
			t.Errorf("insideMeta(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestTextBefore(t *testing.T) {
	content := "line one\nline two\nline three"

	if got := textBefore(content, 0, 4); got != "line" {
		t.Errorf("textBefore(0, 4) = %q", got)
	}
	if got := textBefore(content, 1, 0); got != "line one\n" {
		t.Errorf("textBefore(1, 0) = %q", got)
	}
	if got := textBefore(content, 2, 10); got != content {
		t.Errorf("textBefore(2, 10) = %q", got)
	}
	if got := textBefore(content, 99, 0); got != content {
		t.Errorf("textBefore past EOF = %q", got)
	}
	if got := textBefore(content, -1, 0); got != "" {
		t.Errorf("textBefore(-1, 0) = %q", got)
	}
}

func TestCompletionItemsConfig(t *testing.T) {
	items := completionItems(regionConfig)
	if len(items) == 0 {
		t.Fatal("no config completions")
	}

	byLabel := indexItems(items)
	item, ok := byLabel["pluralName"]
	if !ok {
		t.Fatal("pluralName missing from config completions")
	}
	if item.Kind != protocol.CompletionItemKindProperty {
		t.Errorf("kind = %v, want property", item.Kind)
	}
	if item.InsertText != "pluralName: " {
		t.Errorf("insert text = %q", item.InsertText)
	}
	if _, ok := byLabel["name"]; !ok {
		t.Error("name missing from config completions")
	}
	if _, ok := byLabel["sortable"]; ok {
		t.Error("metadata key offered in config region")
	}
}

func TestCompletionItemsMetadata(t *testing.T) {
	items := completionItems(regionMetadata)
	byLabel := indexItems(items)

	for _, key := range []string{"sortable", "filterable", "searchable"} {
		if _, ok := byLabel[key]; !ok {
			t.Errorf("%s missing from metadata completions", key)
		}
	}
	if _, ok := byLabel["pluralName"]; ok {
		t.Error("config key offered in metadata region")
	}
}

func TestCompletionItemsConstructor(t *testing.T) {
	items := completionItems(regionConstructor)
	byLabel := indexItems(items)

	item, ok := byLabel["string"]
	if !ok {
		t.Fatal("string missing from constructor completions")
	}
	if item.Kind != protocol.CompletionItemKindFunction {
		t.Errorf("kind = %v, want function", item.Kind)
	}
	if item.InsertText != "string()" {
		t.Errorf("insert text = %q", item.InsertText)
	}
	for _, name := range []string{"enum", "money", "boolean"} {
		if _, ok := byLabel[name]; !ok {
			t.Errorf("%s missing from constructor completions", name)
		}
	}
}

func TestCompletionItemsSorted(t *testing.T) {
	// Metadata and constructor vocabularies come from maps and must
	// surface in a stable order. Config keys keep declaration order.
	for _, region := range []completionRegion{regionMetadata, regionConstructor} {
		items := completionItems(region)
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.Label
		}
		if !sortedStrings(labels) {
			t.Errorf("region %d completions not sorted: %v", region, labels)
		}
	}
}

func indexItems(items []protocol.CompletionItem) map[string]protocol.CompletionItem {
	byLabel := make(map[string]protocol.CompletionItem, len(items))
	for _, item := range items {
		byLabel[item.Label] = item
	}
	return byLabel
}

func sortedStrings(labels []string) bool {
	for i := 1; i < len(labels); i++ {
		if strings.Compare(labels[i-1], labels[i]) > 0 {
			return false
		}
	}
	return true
}
