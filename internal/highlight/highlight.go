// Package highlight renders bounded, syntax-highlighted excerpts of text
// files for the preview pane. Highlighting is delegated to chroma; files
// that are not text degrade to ErrBinary instead of garbage output.
package highlight

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrBinary reports a file that is not previewable as text.
var ErrBinary = errors.New("binary file")

// maxReadBytes caps how much of a file is read for an excerpt. Previews
// recompute on every highlight change, so reads stay small.
const maxReadBytes = 256 * 1024

// sniffBytes is how much of the head is examined for binary content.
const sniffBytes = 8 * 1024

// Excerpt returns the first maxLines lines of the file, highlighted for a
// 256-color terminal. When the file has more lines than the excerpt, a
// trailing marker says how many were cut; past the read cap the marker
// carries no count. Binary files yield ErrBinary.
func Excerpt(path string, maxLines int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxReadBytes+1))
	if err != nil {
		return "", err
	}
	clipped := len(data) > maxReadBytes
	if clipped {
		data = data[:maxReadBytes]
	}

	if isBinary(data) {
		return "", ErrBinary
	}

	lines := strings.Split(string(data), "\n")
	total := len(lines)
	if clipped {
		// The read cap likely cut the last line mid-way.
		lines = lines[:total-1]
		total--
	} else if total > 0 && lines[total-1] == "" {
		lines = lines[:total-1]
		total--
	}

	truncated := total > maxLines
	if truncated {
		lines = lines[:maxLines]
	}
	excerpt := strings.Join(lines, "\n")

	rendered := render(path, excerpt)
	// A clipped read leaves the real line count unknown, so the marker
	// drops the number rather than report a wrong one.
	switch {
	case clipped:
		rendered += "\n\n...and more lines"
	case truncated:
		rendered += "\n\n...and " + strconv.Itoa(total-maxLines) + " more lines"
	}
	return rendered, nil
}

// render highlights source text, falling back to the plain text when no
// lexer applies or tokenizing fails.
func render(path, source string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return source
	}
	return b.String()
}

// isBinary checks the head of the data for NUL bytes or a high ratio of
// invalid UTF-8, the same heuristic grep-alikes use.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > sniffBytes {
		sample = sample[:sniffBytes]
	}
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	invalid := 0
	for rest := sample; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		rest = rest[size:]
	}
	return invalid*10 > len(sample)
}
