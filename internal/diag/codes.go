package diag

// Diagnostic code constants organized by stage
// GEN001-GEN009: extraction
// GEN010-GEN019: artifact output
// GEN020-GEN029: wiring
// GEN030-GEN039: batch

const (
	CodeDescriptorNotFound  = "GEN001"
	CodeInvalidDescriptor   = "GEN002"
	CodeWriteFailed         = "GEN010"
	CodeWiringMarkerMissing = "GEN020"
	CodeWiringImportAnchor  = "GEN021"
	CodeBatchItemFailure    = "GEN030"
)

// NotFound reports a resource whose declaration file does not exist.
func NotFound(resource, path string) Diagnostic {
	return Diagnostic{
		Stage:    "extract",
		Code:     CodeDescriptorNotFound,
		Message:  "no declaration file for resource " + resource + " at " + path,
		Severity: Error,
	}
}

// Invalid reports a declaration file that cannot yield a descriptor.
func Invalid(message string, loc Location) Diagnostic {
	return Diagnostic{
		Stage:    "extract",
		Code:     CodeInvalidDescriptor,
		Message:  message,
		Location: loc,
		Severity: Error,
	}
}

// WriteFailed reports an artifact that could not be written. Collected
// per run; it never aborts the remaining artifacts.
func WriteFailed(path string, err error) Diagnostic {
	return Diagnostic{
		Stage:    "write",
		Code:     CodeWriteFailed,
		Message:  "writing " + path + ": " + err.Error(),
		Severity: Error,
	}
}

// MarkerMissing reports a hub whose insertion marker has been removed.
// The hub is left untouched.
func MarkerMissing(hub, marker string) Diagnostic {
	return Diagnostic{
		Stage:    "wiring",
		Code:     CodeWiringMarkerMissing,
		Message:  "marker " + marker + " not found in " + hub + "; entry skipped",
		Severity: Warning,
	}
}

// ImportAnchorMissing reports a hub with no import-shaped line to anchor
// an import insertion on. The entry splice still proceeds.
func ImportAnchorMissing(hub string) Diagnostic {
	return Diagnostic{
		Stage:    "wiring",
		Code:     CodeWiringImportAnchor,
		Message:  "no import line found in " + hub + "; import prepended",
		Severity: Info,
	}
}
