package shell

import (
	"bufio"
	"io"
)

// lineReader reads lines of any length up to limit bytes. Longer lines are
// consumed to their end and reported as ErrLineTooLong.
type lineReader struct {
	br    *bufio.Reader
	limit int
}

func newLineReader(r io.Reader, limit int) *lineReader {
	return &lineReader{br: bufio.NewReader(r), limit: limit}
}

// ReadLine returns the next line without its "\n" or "\r\n" terminator.
// A final line with no terminator is returned normally; io.EOF follows it.
func (r *lineReader) ReadLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.br.ReadLine()
		if err != nil {
			if tooLong {
				return "", ErrLineTooLong
			}
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if r.limit > 0 && len(buf) > r.limit {
				tooLong = true
				buf = nil
			}
		}
		if !isPrefix {
			if tooLong {
				return "", ErrLineTooLong
			}
			return string(buf), nil
		}
	}
}
