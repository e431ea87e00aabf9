package zmqversion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoVersionMacros is returned when a header lacks ZMQ_VERSION_MAJOR or
// ZMQ_VERSION_MINOR.
var ErrNoVersionMacros = errors.New("zmq.h does not define ZMQ_VERSION_MAJOR and ZMQ_VERSION_MINOR")

var defineRe = regexp.MustCompile(`^\s*#\s*define\s+ZMQ_VERSION_(MAJOR|MINOR|PATCH)\s+(\d+)\b`)

// ReadHeader extracts the version macros from the contents of zmq.h.
// A missing ZMQ_VERSION_PATCH reads as 0.
//
// Defines inside /* */ and // comments are skipped and the first definition
// of each macro wins. Conditional blocks (#if) are not evaluated.
func ReadHeader(r io.Reader) (Version, error) {
	var (
		v                            Version
		haveMajor, haveMin, havePtch bool
		inComment                    bool
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var line string
		line, inComment = stripComments(sc.Text(), inComment)
		m := defineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Version{}, fmt.Errorf("ZMQ_VERSION_%s: %w", m[1], err)
		}
		switch {
		case m[1] == "MAJOR" && !haveMajor:
			v.Major, haveMajor = n, true
		case m[1] == "MINOR" && !haveMin:
			v.Minor, haveMin = n, true
		case m[1] == "PATCH" && !havePtch:
			v.Patch, havePtch = n, true
		}
	}
	if err := sc.Err(); err != nil {
		return Version{}, fmt.Errorf("read zmq.h: %w", err)
	}
	if !haveMajor || !haveMin {
		return Version{}, ErrNoVersionMacros
	}
	return v, nil
}

// stripComments removes C comments from line. inComment reports whether the
// line starts inside a block comment; the second result is the same for the
// next line.
func stripComments(line string, inComment bool) (string, bool) {
	var b strings.Builder
	for len(line) > 0 {
		if inComment {
			end := strings.Index(line, "*/")
			if end < 0 {
				return b.String(), true
			}
			line = line[end+2:]
			inComment = false
			b.WriteByte(' ')
			continue
		}
		block := strings.Index(line, "/*")
		single := strings.Index(line, "//")
		if single >= 0 && (block < 0 || single < block) {
			b.WriteString(line[:single])
			return b.String(), false
		}
		if block < 0 {
			b.WriteString(line)
			break
		}
		b.WriteString(line[:block])
		line = line[block+2:]
		inComment = true
	}
	return b.String(), inComment
}

// ReadHeaderFile is ReadHeader for a path on disk.
func ReadHeaderFile(path string) (Version, error) {
	f, err := os.Open(path)
	if err != nil {
		return Version{}, err
	}
	defer f.Close()

	v, err := ReadHeader(f)
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
