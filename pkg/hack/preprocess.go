package hack

import "strings"

// CleanLines turns raw source text into the logical command sequence both
// pipelines consume: comments ("//" to end of line) stripped, surrounding
// whitespace trimmed, blank lines dropped. The result is indexed by
// 1-based command number for diagnostics; raw line numbers are not kept.
func CleanLines(src string) []string {
	var out []string
	for _, raw := range strings.Split(src, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
