// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package asyncstore

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"

	"github.com/goccy/go-json"
)

// maxChunkBytes bounds the size of a single chunk's data payload.
const maxChunkBytes = 4096

// Chunk is one slice of a completed async result, with a chained
// checksum linking it to its predecessor. Produced once, on entering
// Complete; never mutated afterward.
type Chunk struct {
	Offset           int    `json:"offset"`
	Data             string `json:"data"`
	Checksum         string `json:"checksum"`
	ChecksumPrevious string `json:"checksumPrevious,omitempty"` // empty for the first chunk
	State            string `json:"state"`                      // "partial" or "complete"
	Cursor           string `json:"cursor,omitempty"`            // opaque; empty when State is "complete"
}

// buildChunks serializes result and splits it into a checksum-chained
// chunk list. The serialized bytes are never re-derived later: chunking
// is a property of the completed instance, not of the handler.
func buildChunks(result any) ([]Chunk, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		body = []byte("{}")
	}

	var chunks []Chunk
	prevChecksum := ""
	offset := 0

	for offset < len(body) {
		end := offset + maxChunkBytes
		if end > len(body) {
			end = len(body)
		}
		slice := body[offset:end]
		sum := sha256.Sum256(slice)
		checksum := "sha256:" + hex.EncodeToString(sum[:])

		isLast := end == len(body)
		chunk := Chunk{
			Offset:           offset,
			Data:             string(slice),
			Checksum:         checksum,
			ChecksumPrevious: prevChecksum,
		}
		if isLast {
			chunk.State = "complete"
			chunk.Cursor = ""
		} else {
			chunk.State = "partial"
			chunk.Cursor = encodeCursor(end)
		}

		chunks = append(chunks, chunk)
		prevChecksum = checksum
		offset = end
	}

	if len(chunks) == 0 {
		// Empty result still yields exactly one terminal chunk.
		chunks = append(chunks, Chunk{State: "complete"})
	}

	return chunks, nil
}

// encodeCursor turns a byte offset into the opaque cursor string clients
// must quote to continue walking the chunk list.
func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor reverses encodeCursor. An empty cursor selects offset 0
// (the head chunk).
func decodeCursor(cursor string) (int, bool) {
	if cursor == "" {
		return 0, true
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// chunkAtOffset returns the chunk whose Offset matches offset.
func chunkAtOffset(chunks []Chunk, offset int) (Chunk, bool) {
	for _, c := range chunks {
		if c.Offset == offset {
			return c, true
		}
	}
	return Chunk{}, false
}
