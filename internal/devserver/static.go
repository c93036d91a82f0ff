package devserver

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	// Default to index.html for directories
	path := r.URL.Path
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index.html"
	}

	// Security: prevent directory traversal
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	info, err := os.Stat(filePath)
	if err == nil && info.IsDir() {
		filePath = filepath.Join(filePath, "index.html")
		info, err = os.Stat(filePath)
	}
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".html" {
		s.servePage(w, filePath, info)
		return
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if ct := contentType(ext); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

// servePage serves an HTML file with the live-reload client added, reusing
// the rewritten page until the file changes.
func (s *Server) servePage(w http.ResponseWriter, filePath string, info os.FileInfo) {
	content, ok := s.pages.get(filePath, info.ModTime())
	if !ok {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		content, err = InjectReloadScript(raw)
		if err != nil {
			s.logger.Warn("serving page without live reload", "path", filePath, "error", err)
			content = raw
		}
		s.pages.put(filePath, info.ModTime(), content)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}

func contentType(ext string) string {
	switch ext {
	case ".html":
		return "text/html; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".css":
		return "text/css"
	case ".wasm":
		return "application/wasm"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".yaml":
		return "application/yaml"
	default:
		// Let Go's default MIME type detection handle it
		return ""
	}
}

// serveWasmExec serves the site's own wasm_exec.js, or the one shipped with
// the local Go toolchain.
func (s *Server) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(filepath.Join(s.root, "wasm_exec.js")); err == nil {
		s.serveStatic(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	output, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		http.Error(w, "Failed to resolve wasm_exec.js", http.StatusInternalServerError)
		return
	}
	goroot := strings.TrimSpace(string(output))
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		if content, err := os.ReadFile(filepath.Join(goroot, rel)); err == nil {
			w.Write(content)
			return
		}
	}
	http.Error(w, "Failed to load wasm_exec.js", http.StatusInternalServerError)
}

// serveFavicon serves the site favicon if present, otherwise 204 to avoid
// noisy 404s.
func (s *Server) serveFavicon(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.root, "favicon.ico")
	if _, err := os.Stat(path); err == nil {
		http.ServeFile(w, r, path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
