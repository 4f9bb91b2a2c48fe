package purchase

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineSize = 16 * 1024 * 1024

// Load reads a UTF-8 purchase file. See LoadEncoded.
func Load(path string) (*Log, error) {
	return LoadEncoded(path, nil)
}

// LoadEncoded reads the purchase file at path, decoding it from enc
// (UTF-8 when enc is nil). Records keep the file's line order.
// Any open or read failure is returned as *FileAccessError with no partial log.
func LoadEncoded(path string, enc encoding.Encoding) (*Log, error) {
	if enc == nil {
		enc = unicode.UTF8BOM
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	log, err := Read(transform.NewReader(f, enc.NewDecoder()))
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}
	return log, nil
}

// Read parses every line from r. Lines may end in \n, \r\n or \r.
// A line of 16 MiB or more is skipped and counted as an error line.
func Read(r io.Reader) (*Log, error) {
	return readLines(r, maxLineSize)
}

func readLines(r io.Reader, limit int) (*Log, error) {
	splitter := &lineSplitter{limit: limit}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, limit)), limit)
	scanner.Split(splitter.split)

	log := &Log{Records: []Record{}}
	for scanner.Scan() {
		log.addLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.addOversized(splitter.oversized)
	return log, nil
}

// CountErrors returns the number of non-blank lines in path that are not
// valid purchases. It goes through Load, so it always agrees with it.
func CountErrors(path string) (int, error) {
	log, err := Load(path)
	if err != nil {
		return 0, err
	}
	return log.Errors, nil
}

// lineSplitter is bufio.ScanLines that also accepts a lone \r as a
// terminator and drops lines that do not fit in limit bytes
type lineSplitter struct {
	limit     int
	skipping  bool
	nonBlank  bool // skipped line had non-space content
	oversized int  // non-blank lines dropped
}

func (s *lineSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		s.endSkip()
		return 0, nil, nil
	}

	end, advance := lineEnd(data, atEOF)
	if advance == 0 {
		if len(data) >= s.limit {
			s.skip(data)
			return len(data), nil, nil
		}
		return 0, nil, nil
	}
	if s.skipping {
		s.skip(data[:end])
		s.endSkip()
		return advance, nil, nil
	}
	return advance, data[:end], nil
}

func (s *lineSplitter) skip(chunk []byte) {
	s.skipping = true
	if len(bytes.TrimSpace(chunk)) > 0 {
		s.nonBlank = true
	}
}

func (s *lineSplitter) endSkip() {
	if s.skipping && s.nonBlank {
		s.oversized++
	}
	s.skipping, s.nonBlank = false, false
}

// lineEnd returns where the first line in data ends and how many bytes it
// occupies with its terminator. advance is 0 when more data is needed.
func lineEnd(data []byte, atEOF bool) (end, advance int) {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i, i + 1
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i, i + 2
			}
			return i, i + 1
		}
		if atEOF {
			return i, i + 1
		}
		// need one more byte to tell \r from \r\n
		return 0, 0
	}
	if atEOF {
		return len(data), len(data)
	}
	return 0, 0
}
