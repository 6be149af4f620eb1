// Package static serves a directory tree over HTTP the way a simple
// development server does: files by extension, index files for directories,
// and a generated listing when a directory has no index.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Handler serves files below a fixed root directory.
type Handler struct {
	root       string
	fs         http.FileSystem
	indexFiles []string
}

// New returns a Handler rooted at root, which must be an existing directory.
func New(root string, indexFiles []string) (*Handler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}
	if err := registerTypes(); err != nil {
		return nil, err
	}

	return &Handler{
		root:       abs,
		fs:         http.Dir(abs),
		indexFiles: indexFiles,
	}, nil
}

// Root returns the absolute directory being served.
func (h *Handler) Root() string {
	return h.root
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Unsupported method ("+r.Method+")", http.StatusNotImplemented)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	// path.Clean drops ".." segments at the root, so the name never leaves it.
	name := path.Clean(upath)
	trailingSlash := strings.HasSuffix(upath, "/") && name != "/"

	f, err := h.fs.Open(name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if info.IsDir() {
		if !trailingSlash && name != "/" {
			redirectToDir(w, r, name)
			return
		}
		if h.serveIndex(w, r, name) {
			return
		}
		h.serveListing(w, r, f, name)
		return
	}

	if trailingSlash {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// serveIndex serves the first index file present in dir and reports whether
// it did.
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request, dir string) bool {
	for _, index := range h.indexFiles {
		f, err := h.fs.Open(path.Join(dir, index))
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			f.Close()
			continue
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		f.Close()
		return true
	}
	return false
}

func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, dir http.File, name string) {
	infos, err := dir.Readdir(-1)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	entries := entriesFromInfos(infos)
	for i, e := range entries {
		if e.symlink {
			entries[i].dir = h.isDir(path.Join(name, e.name))
		}
	}
	sortEntries(entries)

	displayPath := name
	if displayPath != "/" {
		displayPath += "/"
	}
	page, err := renderListing(displayPath, entries)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(page)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(page)
	}
}

// isDir reports whether name resolves to a directory, following symlinks.
func (h *Handler) isDir(name string) bool {
	f, err := h.fs.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

// fail maps a filesystem error to a response. Missing and unreadable paths
// are both reported as not found.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		http.NotFound(w, r)
		return
	}
	log.Printf("serve %s: %v", r.URL.Path, err)
	http.Error(w, "500 internal server error", http.StatusInternalServerError)
}

func redirectToDir(w http.ResponseWriter, r *http.Request, name string) {
	target := &url.URL{Path: name + "/", RawQuery: r.URL.RawQuery}
	w.Header().Set("Location", target.String())
	w.WriteHeader(http.StatusMovedPermanently)
}
