package devserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
)

// Reload targets.
const (
	TargetCSS  = "css"
	TargetPage = "page"
)

var watchedExts = map[string]bool{
	".html": true, ".css": true, ".js": true, ".wasm": true, ".json": true,
	".yaml": true, ".svg": true, ".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

// Watch starts watching the site root. Changes are batched for the
// configured debounce and then pushed to every connected page.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	s.watcher = watcher

	if err := s.setupWatcher(); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.root, err)
	}
	go s.watchFiles(ctx)
	return nil
}

func (s *Server) setupWatcher() error {
	return filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		// Skip hidden directories and node_modules
		if path != s.root && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
			return filepath.SkipDir
		}
		return s.watcher.Add(path)
	})
}

func (s *Server) watchFiles(ctx context.Context) {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event
	var mu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = s.watcher.Add(event.Name)
					continue
				}
			}
			if !isRelevantFile(event.Name) {
				continue
			}

			mu.Lock()
			pendingEvents = append(pendingEvents, event)
			mu.Unlock()

			debounce.Reset(s.cfg.Dev.Debounce.Std())

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			mu.Lock()
			events := pendingEvents
			pendingEvents = nil
			mu.Unlock()

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func isRelevantFile(path string) bool {
	return watchedExts[strings.ToLower(filepath.Ext(path))]
}

// reloadTarget is css when only style sheets changed, so pages can swap them
// without a full reload.
func reloadTarget(files []string) string {
	if len(files) == 0 {
		return TargetPage
	}
	for _, f := range files {
		if strings.ToLower(filepath.Ext(f)) != ".css" {
			return TargetPage
		}
	}
	return TargetCSS
}

func (s *Server) handleFileChanges(events []fsnotify.Event) {
	seen := make(map[string]bool)
	var files []string
	for _, event := range events {
		if seen[event.Name] {
			continue
		}
		seen[event.Name] = true
		files = append(files, event.Name)
		s.pages.invalidate(event.Name)
	}

	target := reloadTarget(files)
	s.logger.Info("files changed", "count", len(files), "reload", target)
	s.Broadcast(target, files)
}

// Broadcast tells every connected page to reload.
func (s *Server) Broadcast(target string, files []string) {
	rel := make([]string, 0, len(files))
	for _, f := range files {
		if r, err := filepath.Rel(s.root, f); err == nil {
			f = filepath.ToSlash(r)
		}
		rel = append(rel, f)
	}
	s.notifyClients("reload", map[string]interface{}{
		"target": target,
		"files":  rel,
	})
}

func (s *Server) notifyClients(msgType string, data map[string]interface{}) {
	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			s.logger.Debug("dropping reload client", "error", err)
			client.Close()
			delete(s.wsClients, client)
		}
	}
}

// Clients counts connected pages.
func (s *Server) Clients() int {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	return len(s.wsClients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket error", "error", err)
			}
			return
		}

		switch msg["type"] {
		case "HELLO":
			s.wsMutex.Lock()
			err := conn.WriteJSON(map[string]interface{}{"type": "ACK"})
			s.wsMutex.Unlock()
			if err != nil {
				return
			}
		default:
			s.logger.Debug("unknown websocket message", "type", msg["type"])
		}
	}
}
