// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	xglog "github.com/ManuGH/epgtrans/internal/log"
	"github.com/google/renameio/v2"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Encode serializes tv with an explicit UTF-8 declaration.
func Encode(w io.Writer, tv *TV) error {
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(tv); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Write replaces path with the serialized document using renameio: temp file,
// fsync, atomic rename. On failure the previous file is left untouched.
// Errors wrap ErrWrite.
func Write(ctx context.Context, path string, tv *TV) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("%w: create pending file: %w", ErrWrite, err)
	}
	defer func() {
		// No-op after a successful commit.
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str(xglog.FieldPath, path).Msg("cleanup pending XMLTV file")
		}
	}()

	if err := Encode(pendingFile, tv); err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: atomically replace: %w", ErrWrite, err)
	}
	return nil
}
