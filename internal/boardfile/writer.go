package boardfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/park285/cheese-board/internal/engine"
)

const header = "# cheese-board annotation: <color><kind><file><rank>, @mover, $type, %color_name"

// Write emits every square (empty ones as E tokens), one rank per line from
// rank 8 down, followed by the mover, game type and player tags.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	bw.WriteByte('\n')

	for j := engine.Size - 1; j >= 0; j-- {
		for i := 0; i < engine.Size; i++ {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(doc.Board.Square(i, j).Token())
		}
		bw.WriteByte('\n')
	}

	bw.WriteByte('@')
	bw.WriteByte(doc.Mover.Letter())
	bw.WriteByte('\n')
	bw.WriteByte('$')
	bw.WriteByte(doc.GameType.Letter())
	bw.WriteByte('\n')
	for _, p := range doc.Players {
		bw.WriteByte('%')
		bw.WriteByte(p.Color.Letter())
		bw.WriteByte('_')
		bw.WriteString(EncodeName(p.Name))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String renders doc the way Write does.
func String(doc *Document) string {
	var b strings.Builder
	_ = Write(&b, doc)
	return b.String()
}

// EncodeName folds whitespace runs into `_` so the name stays a single token.
func EncodeName(name string) string {
	// '#' would start a comment when the file is read back
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "#", " ")), "_")
	if name == "" {
		return "anonymous"
	}
	return name
}
