package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the default charset, taken from $LANG.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	} else {
		EncName = ""
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// getEncoding returns nil for UTF-8, which needs no decoding.
func getEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

// openCsv opens fn ("" or "-" is stdin), decodes it from encName and
// guesses the field separator from the first line.
func openCsv(fn, encName string) (csvReadCloser, error) {
	enc, err := getEncoding(encName)
	if err != nil {
		return csvReadCloser{}, err
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		if fh, err = os.Open(fn); err != nil {
			return csvReadCloser{}, err
		}
	}
	r := io.Reader(fh)
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		fh.Close()
		return csvReadCloser{}, err
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.Comma = sniffComma(b)
	return csvReadCloser{cr, fh}, nil
}

// sniffComma returns the first rune that cannot be part of a plain field.
func sniffComma(b []byte) rune {
	for _, r := range string(b) {
		if r == '"' || r == '_' || r == ' ' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		if r == '\n' || r == '\r' {
			break
		}
		return r
	}
	return ','
}
