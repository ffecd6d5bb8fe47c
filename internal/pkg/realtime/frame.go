package realtime

import (
	"bytes"
	"io"
)

// Frame один SSE кадр. Кадр с Comment пишется как ": comment" и игнорируется EventSource.
type Frame struct {
	Name    string
	Data    []byte
	Comment string
}

func (f Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	if f.Comment != "" {
		buf.WriteString(": ")
		buf.WriteString(f.Comment)
		buf.WriteString("\n\n")
	} else {
		buf.WriteString("event: ")
		buf.WriteString(f.Name)
		buf.WriteString("\ndata: ")
		buf.Write(f.Data)
		buf.WriteString("\n\n")
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
