package xl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
)

// Storage is the destination of Save. Paths are package-absolute,
// e.g. "/xl/worksheets/sheet1.xml".
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage lays parts out as plain files under Dir.
type DirStorage struct {
	Dir string
}

func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{Dir: dir}
}

func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	fn := filepath.Join(ds.Dir, filepath.FromSlash(relPart(path)))
	if err := os.MkdirAll(filepath.Dir(fn), 0777); err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0666)
}

// ZipStorage stores parts as deflated entries of a zip stream.
// The stream is incomplete until Close.
type ZipStorage struct {
	z *zip.Writer
}

func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	w, err := zs.z.Create(relPart(path))
	if err != nil {
		return err
	}
	_, err = w.Write(blob)
	return err
}

func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

// relPart drops the leading slash of a part path.
func relPart(path string) string {
	return strings.TrimPrefix(path, "/")
}

// PartName is the package path of the worksheet called name.
func PartName(name string) string {
	return "/xl/worksheets/" + name + ".xml"
}

// Save stores the rendered worksheet under PartName(name).
func (ws *Worksheet) Save(s Storage, name string) error {
	if err := validateSheetName(name); err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	return s.WriteBlob(PartName(name), ws.doc.Bytes())
}

// maxSheetName is the longest sheet name Excel accepts, in characters.
const maxSheetName = 31

func validateSheetName(s string) error {
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return errors.New("name is empty")
	case n > maxSheetName:
		return fmt.Errorf("name exceeds %d characters", maxSheetName)
	case s[0] == '\'' || s[len(s)-1] == '\'':
		return errors.New("name starts or ends with an apostrophe")
	}
	if i := strings.IndexAny(s, `:\/?*[]`); i >= 0 {
		return fmt.Errorf("name contains %q", s[i])
	}
	return nil
}
