// Package jsonl reads and writes the records sequence as newline-delimited
// JSON, one Record per line, preserving insertion order.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/steveyegge/brain/internal/types"
)

// Unmarshal parses JSONL data into records, skipping blank lines. A parse
// failure names the 1-based line number.
func Unmarshal(data []byte) ([]types.Record, error) {
	var records []types.Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var rec types.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing record at line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	return records, nil
}

// Marshal serializes records as newline-delimited JSON, one object per
// line, appending a single trailing newline iff records is non-empty.
func Marshal(records []types.Record) ([]byte, error) {
	if len(records) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding record %s: %w", rec.RecordID, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ReadFile reads and parses the records file at path. A missing file
// returns the underlying *PathError so callers can distinguish "absent"
// from "malformed" with os.IsNotExist.
func ReadFile(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 - fixed index-folder path
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// WriteFile rewrites path in full with records — callers always replace the
// whole file, never append. Neither the initializer nor the BWT engine
// calls it: Init writes an empty file itself, and the engine stages
// through its own tmp path.
func WriteFile(path string, records []types.Record) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
