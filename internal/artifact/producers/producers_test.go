package producers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armature-dev/armature/internal/descriptor"
)

const invoiceSource = `
export default defineResource(
  {
    name: "invoice",
    label: "Invoice",
    pageSize: 25,
    query: (ctx) => ctx.orderBy("issuedAt", "desc"),
    analytics: [{ kind: "timeseries", field: "total" }],
  },
  {
    number: f.string().meta({ label: "Invoice #", searchable: true }),
    total: f.number().meta({ unit: "USD", format: (v) => v.toFixed(2) }),
    paid: f.boolean(),
    status: f.enum(["draft", "sent", "overdue"]),
    notes: f.text().optional().meta({ visibility: "form", input: "textarea" }),
    audit: auditTrail(),
  }
);
`

func extractInvoice(t *testing.T) *descriptor.Descriptor {
	t.Helper()
	desc, err := descriptor.Extract(invoiceSource, "src/resources/invoice.ts", descriptor.Options{})
	require.NoError(t, err)
	return desc
}

func TestSchema_MapsFieldKinds(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Schema(desc)
	require.True(t, ok)

	assert.Contains(t, content, "// Code generated by armature from src/resources/invoice.ts. DO NOT EDIT.")
	assert.Contains(t, content, `import { z } from "zod";`)
	assert.Contains(t, content, "export const invoicesSchema = z.object({")
	assert.Contains(t, content, "number: z.string(),")
	assert.Contains(t, content, "total: z.number(),")
	assert.Contains(t, content, "paid: z.boolean(),")
	assert.Contains(t, content, `status: z.enum(["draft", "sent", "overdue"]),`)
	assert.Contains(t, content, "notes: z.string().optional(),")
	assert.Contains(t, content, "audit: z.unknown() /* auditTrail() */,")
	assert.Contains(t, content, "export type Invoice = z.infer<typeof invoicesSchema>;")
}

func TestCollection_PreservesConfigVerbatim(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Collection(desc)
	require.True(t, ok)

	assert.Contains(t, content, `import { invoicesSchema } from "../schemas/invoices";`)
	assert.Contains(t, content, "export const invoicesCollection = defineCollection({")
	assert.Contains(t, content, `name: "invoice",`)
	assert.Contains(t, content, `pluralName: "invoices",`)
	assert.Contains(t, content, "pageSize: 25,")
	assert.Contains(t, content, `query: (ctx) => ctx.orderBy("issuedAt", "desc"),`,
		"uninterpreted config passes through verbatim")
	assert.Equal(t, 1, strings.Count(content, `name: "invoice"`), "handled keys are not duplicated")
}

func TestCollection_FieldDescriptors(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Collection(desc)
	require.True(t, ok)

	assert.Contains(t, content, `{ name: "number", kind: "string", label: "Invoice #", searchable: true }`)
	assert.Contains(t, content, `{ name: "notes", kind: "string", label: "Notes", optional: true, visibility: "form", input: "textarea" }`)
	assert.Contains(t, content, `{ name: "audit", kind: "unknown", label: "Audit", source: "auditTrail()" }`)
}

func TestColumns_RespectsVisibilityAndKinds(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Columns(desc)
	require.True(t, ok)

	assert.Contains(t, content, "export const invoicesColumns: ColumnDef<Invoice>[] = [")
	assert.NotContains(t, content, `key: "notes"`, "form-only fields have no column")
	assert.Contains(t, content, `{ key: "total", header: "Total", sortable: true, align: "right", format: (v) => v.toFixed(2) }`)
	assert.Contains(t, content, `filter: { kind: "select", options: ["draft", "sent", "overdue"] }`)
	assert.Contains(t, content, `filter: { kind: "toggle" }`)
}

func TestForm_DerivesInputs(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Form(desc)
	require.True(t, ok)

	assert.Contains(t, content, "export const invoiceFormFields: FormField[] = [")
	assert.Contains(t, content, `{ name: "number", label: "Invoice #", input: "text", required: true }`)
	assert.Contains(t, content, `input: "select"`)
	assert.Contains(t, content, `options: ["draft", "sent", "overdue"]`)
	assert.Contains(t, content, `{ name: "notes", label: "Notes", input: "textarea" }`,
		"optional fields are not required and honor the input hint")
	assert.Contains(t, content, `unit: "USD"`)
}

func TestRoutes_BindsGeneratedModules(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Routes(desc)
	require.True(t, ok)

	assert.Contains(t, content, `import { invoicesCollection } from "../collections/invoices";`)
	assert.Contains(t, content, `import { invoicesColumns } from "../tables/invoices-columns";`)
	assert.Contains(t, content, `import { invoiceFormFields } from "../forms/invoice-form";`)
	assert.Contains(t, content, "export const invoicesRoutes = defineRoutes(invoicesCollection, {")
	assert.Contains(t, content, `base: "/invoices",`)
}

func TestCharts_UsesAnalyticsConfig(t *testing.T) {
	desc := extractInvoice(t)

	content, ok := Charts(desc)
	require.True(t, ok)

	assert.Contains(t, content, "export const invoicesCharts = defineCharts(invoicesCollection, ")
	assert.Contains(t, content, `{ kind: "timeseries", field: "total" }`)
}

func TestCharts_SkipsWithoutAnalytics(t *testing.T) {
	source := `defineResource({ name: "plain" }, { title: f.string() })`
	desc, err := descriptor.Extract(source, "plain.ts", descriptor.Options{})
	require.NoError(t, err)

	_, ok := Charts(desc)
	assert.False(t, ok)
}

func TestDefault_RegistersAllKindsInOrder(t *testing.T) {
	r := Default()
	kinds := r.Kinds()

	require.Len(t, kinds, 6)
	assert.Equal(t, "schema", string(kinds[0]))
	assert.Equal(t, "collection", string(kinds[1]))
	assert.Equal(t, "analytics", string(kinds[5]))
}
