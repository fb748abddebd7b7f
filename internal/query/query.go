// Package query implements the digest-first filter/score/top-k pipeline: it
// never touches records.jsonl on the hot path, reading only the fast-scan
// digest.
package query

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/steveyegge/brain/internal/digest"
	"github.com/steveyegge/brain/internal/idgen"
	"github.com/steveyegge/brain/internal/jsonl"
	"github.com/steveyegge/brain/internal/types"
)

const defaultTopK = 10

// Run executes the pipeline against the digest file under root.
func Run(root string, req types.QueryRequest) (*types.QueryResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	raw, err := os.ReadFile(filepath.Join(root, "90_index", "records_digest.txt")) // #nosec G304 - fixed index-folder path
	if err != nil {
		return nil, err
	}
	lines, err := digest.Parse(raw)
	if err != nil {
		return nil, err
	}

	// step 2: filter by scope.
	var scoped []digest.Line
	if req.ScopeType != "" {
		abbrevSub := idgen.ScopeAbbrevSubstring(req.ScopeType)
		for _, l := range lines {
			if !strings.Contains(l.RecordID, abbrevSub) {
				continue
			}
			if req.ScopeID != "" && !strings.Contains(l.RecordID, "_"+req.ScopeID+"_") {
				continue
			}
			scoped = append(scoped, l)
		}
	} else {
		scoped = lines
	}

	// step 3: active only.
	var active []digest.Line
	for _, l := range scoped {
		if l.Status == types.StatusActive {
			active = append(active, l)
		}
	}
	total := len(active)

	// step 4: score against goal.
	tokens := goalTokens(req.Goal)
	type scored struct {
		line  digest.Line
		score int
		order int
	}
	results := make([]scored, len(active))
	for i, l := range active {
		results[i] = scored{line: l, score: score(l, tokens), order: i}
	}

	// step 5: sort by score desc, ties preserve original order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	// step 6: top-k.
	if topK > len(results) {
		topK = len(results)
	}
	candidates := make([]types.Candidate, topK)
	for i := 0; i < topK; i++ {
		r := results[i]
		candidates[i] = types.Candidate{
			RecordID: r.line.RecordID,
			Title:    r.line.Title,
			Summary:  r.line.Summary,
			Tags:     r.line.Tags,
			Status:   r.line.Status,
			Score:    r.score,
		}
	}

	return &types.QueryResponse{Candidates: candidates, Total: total}, nil
}

// goalTokens lowercases and splits the goal on whitespace, dropping tokens
// of length <= 1 (counted in characters, not bytes). An empty goal yields no tokens (all scores stay 0).
func goalTokens(goal string) []string {
	if goal == "" {
		return nil
	}
	fields := strings.Fields(strings.ToLower(goal))
	var tokens []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func score(l digest.Line, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	title := strings.ToLower(l.Title)
	summary := strings.ToLower(l.Summary)
	tagBlob := strings.ToLower(strings.Join(l.Tags, ","))

	total := 0
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			total += 3
		}
		if strings.Contains(summary, tok) {
			total += 2
		}
		if strings.Contains(tagBlob, tok) {
			total += 1
		}
	}
	return total
}

// Detail looks up a single record's full shape by id, reading
// records.jsonl directly. Returns nil, nil when not found.
func Detail(root, recordID string) (*types.Record, error) {
	records, err := jsonl.ReadFile(filepath.Join(root, "90_index", "records.jsonl"))
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.RecordID == recordID {
			rc := r
			return &rc, nil
		}
	}
	return nil, nil
}
