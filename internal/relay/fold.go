package relay

import "strings"

const (
	FoldPadding    = 500
	zeroWidthSpace = "\u200b"
)

// Fold puts body behind a "see more" fold: chat clients that collapse long
// messages show only header until expanded.
func Fold(header, body string) string {
	header = strings.TrimSpace(header)
	if strings.TrimSpace(body) == "" {
		return header
	}

	var b strings.Builder
	b.Grow(len(header) + FoldPadding*len(zeroWidthSpace) + len(body) + 1)
	b.WriteString(header)
	b.WriteString(strings.Repeat(zeroWidthSpace, FoldPadding))
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String()
}
