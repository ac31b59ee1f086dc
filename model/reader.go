package model

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FieldReader is just a simple reader for basic file formats. Fields are
// separated by whitespace or commas.
type FieldReader struct {
	Pos    int
	Fields []string
}

// NewFieldReader constructs a new field reader around the given data
func NewFieldReader(data string) *FieldReader {
	isSep := func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}
	return &FieldReader{0, strings.FieldsFunc(data, isSep)}
}

// Read returns the next field/token
func (fr *FieldReader) Read() (string, error) {
	if fr.Pos >= len(fr.Fields) {
		return "", io.EOF
	}
	p := fr.Pos
	fr.Pos++
	return fr.Fields[p], nil
}

// ReadFloat reads the next token as a float
func (fr *FieldReader) ReadFloat() (float64, error) {
	s, err := fr.Read()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(s, 64)
}

// Preprocessor for observation files: drop everything from a '#' to the end
// of its line.
func stripComments(data []byte) string {
	lines := strings.Split(string(data), "\n")
	for i, ln := range lines {
		if pos := strings.IndexByte(ln, '#'); pos >= 0 {
			lines[i] = ln[:pos]
		}
	}
	return strings.Join(lines, "\n")
}

// NewObservationsFromFile reads and validates the observations in filename
func NewObservationsFromFile(filename string) (*Observations, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not READ observations from %s", filename)
	}

	obs, err := NewObservationsFromBuffer(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid observation file %s", filename)
	}

	return obs, nil
}

// NewObservationsFromBuffer parses observations from pre-read data
func NewObservationsFromBuffer(data []byte) (*Observations, error) {
	fr := NewFieldReader(stripComments(data))

	y := make([]float64, 0, len(fr.Fields))
	for {
		v, err := fr.ReadFloat()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidData, "could not PARSE field %d (%q)", fr.Pos, fr.Fields[fr.Pos-1])
		}
		y = append(y, v)
	}

	return NewObservations(y)
}
