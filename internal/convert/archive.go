package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
)

// Source abstracts where an export lives: an unpacked directory or a .zip
// archive as downloaded from the export UI. Open resolves a named file
// inside the export, transparently decompressing a .gz sibling when the
// plain file is absent.
type Source interface {
	Open(name string) (io.ReadCloser, error)
	Close() error
}

// OpenSource opens path as an export source. Directories and .zip archives
// are supported directly.
func OpenSource(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.ExportUnreadable,
			fmt.Sprintf("cannot open export %s", path), err)
	}

	if info.IsDir() {
		return &dirSource{root: path}, nil
	}

	if strings.HasSuffix(path, ".zip") {
		rc, err := zip.OpenReader(path)
		if err != nil {
			return nil, ckcerrors.New(ckcerrors.ExportUnreadable,
				fmt.Sprintf("cannot open export archive %s", path), err)
		}
		return &zipSource{rc: rc}, nil
	}

	return nil, ckcerrors.New(ckcerrors.ExportUnreadable,
		fmt.Sprintf("export %s is neither a directory nor a .zip archive", path), nil)
}

type dirSource struct {
	root string
}

func (s *dirSource) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, name))
	if err == nil {
		return f, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	gz, gzErr := os.Open(filepath.Join(s.root, name+".gz"))
	if gzErr != nil {
		return nil, err
	}
	zr, gzErr := gzip.NewReader(gz)
	if gzErr != nil {
		gz.Close()
		return nil, gzErr
	}
	return &gzipReadCloser{zr: zr, file: gz}, nil
}

func (s *dirSource) Close() error { return nil }

type zipSource struct {
	rc *zip.ReadCloser
}

func (s *zipSource) Open(name string) (io.ReadCloser, error) {
	// Export archives sometimes nest everything under one top-level folder.
	for _, f := range s.rc.File {
		if f.Name == name || strings.HasSuffix(f.Name, "/"+name) {
			return f.Open()
		}
	}
	return nil, os.ErrNotExist
}

func (s *zipSource) Close() error { return s.rc.Close() }

type gzipReadCloser struct {
	zr   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
