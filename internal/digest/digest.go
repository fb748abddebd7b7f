// Package digest derives the pipe-delimited fast-scan projection of the
// records sequence that the query engine reads. The digest is never
// maintained independently — Render is the only path that produces it,
// which keeps it in lockstep with records.jsonl by construction rather than
// by discipline.
package digest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/steveyegge/brain/internal/types"
)

// Header is the digest file's fixed three comment lines.
var Header = []string{
	"# brain records digest",
	"# format: recordId | title | summary | tags | status",
	"# generated — do not hand-edit, it is a projection of records.jsonl",
}

// Line is one parsed digest data row.
type Line struct {
	RecordID string
	Title    string
	Summary  string
	Tags     []string
	Status   types.Status
}

func format(r types.Record) string {
	return fmt.Sprintf("%s | %s | %s | %s | %s", r.RecordID, r.Title, r.Summary, strings.Join(r.Tags, ","), r.Status)
}

// Render projects records into the digest file's exact on-disk bytes.
func Render(records []types.Record) []byte {
	var buf bytes.Buffer
	for _, h := range Header {
		buf.WriteString(h)
		buf.WriteByte('\n')
	}
	for _, r := range records {
		buf.WriteString(format(r))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Parse reads digest lines back, skipping blanks and "#" header lines.
func Parse(data []byte) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Split(raw, " | ")
		if len(fields) != 5 {
			return nil, fmt.Errorf("parsing digest at line %d: expected 5 fields, got %d", lineNum, len(fields))
		}
		var tags []string
		if fields[3] != "" {
			tags = strings.Split(fields[3], ",")
		}
		lines = append(lines, Line{
			RecordID: fields[0],
			Title:    fields[1],
			Summary:  fields[2],
			Tags:     tags,
			Status:   types.Status(fields[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning digest: %w", err)
	}
	return lines, nil
}
