// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Guide fields
	FieldChannel    = "channel"
	FieldChannels   = "channels"
	FieldProgrammes = "programmes"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldBytes      = "bytes"

	// Translation fields
	FieldSource   = "source"
	FieldTarget   = "target"
	FieldAttempt  = "attempt"
	FieldAttempts = "attempts"
	FieldCall     = "call"
	FieldProvider = "provider"

	// Path fields
	FieldPath = "path"
)
