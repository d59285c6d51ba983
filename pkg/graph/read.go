package graph

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/dfpa/pkg/errors"
)

// =============================================================================
// DIMACS Reader API
// =============================================================================

// ReadFile opens path and parses it as a DIMACS graph.
// A missing file yields an error with code FILE_NOT_FOUND; malformed content
// yields INVALID_GRAPH.
func ReadFile(path string, mode Mode) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	g, err := Parse(f, mode)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return g, nil
}

// Parse reads a DIMACS graph from r.
//
// Blank lines and lines starting with 'c' are skipped. The first remaining
// line is the header; its third token is the vertex count. Every later line
// adds an edge between its second and third tokens (1-based ids).
func Parse(r io.Reader, mode Mode) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		sets   []map[int]struct{}
		header bool
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		fields := strings.Fields(line)

		if !header {
			n, err := parseHeader(fields)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "line %d", lineNo)
			}
			sets = make([]map[int]struct{}, n)
			for i := range sets {
				sets[i] = make(map[int]struct{})
			}
			header = true
			continue
		}

		u, v, err := parseEdge(fields, len(sets))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "line %d", lineNo)
		}
		addEdge(sets, u, v, mode)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "scan")
	}
	if !header {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "missing header line")
	}
	return fromSets(sets, mode), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func parseHeader(fields []string) (int, error) {
	if len(fields) < 3 {
		return 0, errors.New(errors.ErrCodeInvalidGraph, "header needs at least 3 tokens, got %d", len(fields))
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidGraph, err, "vertex count %q", fields[2])
	}
	if n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidGraph, "negative vertex count %d", n)
	}
	return n, nil
}

func parseEdge(fields []string, n int) (int, int, error) {
	if len(fields) < 3 {
		return 0, 0, errors.New(errors.ErrCodeInvalidGraph, "edge needs 3 tokens, got %d", len(fields))
	}
	u, err := parseVertex(fields[1], n)
	if err != nil {
		return 0, 0, err
	}
	v, err := parseVertex(fields[2], n)
	if err != nil {
		return 0, 0, err
	}
	if u == v {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidGraph, ErrSelfLoop, "vertex %d", u+1)
	}
	return u, v, nil
}

func parseVertex(tok string, n int) (int, error) {
	id, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidGraph, err, "vertex id %q", tok)
	}
	if id < 1 || id > n {
		return 0, errors.Wrap(errors.ErrCodeInvalidGraph, ErrVertexOutOfRange, "vertex id %d not in [1, %d]", id, n)
	}
	return id - 1, nil
}
