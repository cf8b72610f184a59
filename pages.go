package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdiggity/blog/site"
	"github.com/jdiggity/blog/theme"
)

// pageWriter publishes rendered pages as <outDir>/<page path>/index.html.
type pageWriter struct {
	outDir string
	ctx    *site.Context
}

func newPageWriter(outDir string, ctx *site.Context) pageWriter {
	return pageWriter{outDir: outDir, ctx: ctx}
}

func (pw pageWriter) filePath(urlPath string) string {
	rel := strings.Trim(urlPath, "/")
	return filepath.Join(pw.outDir, filepath.FromSlash(rel), "index.html")
}

func (pw pageWriter) write(page theme.Page) (err error) {
	path := pw.filePath(page.Path())
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0775)); err != nil {
		return err
	}

	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := outFile.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(outFile)
	if err := theme.Write(w, theme.Render(page, pw.ctx)); err != nil {
		return err
	}
	return w.Flush()
}
