package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const (
	WorkbookPath  = "/files/patients.xlsx"
	LogoPath      = "/files/logo.svg"
	TokenEndpoint = "/oauth2/token"
	AccessToken   = "oauth2-token"
	ClientId      = "client-id"
	ClientSecret  = "client-secret"
)

// FileServer serves files by request path and, when RequireToken is set,
// rejects requests without the oauth2 access token it hands out.
type FileServer struct {
	*httptest.Server

	RequireToken bool

	mu       sync.Mutex
	files    map[string][]byte
	requests map[string]int
}

func (f *FileServer) AddFile(path string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = body
}

func (f *FileServer) RemoveFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
}

func (f *FileServer) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func ServerStub() *FileServer {
	stub := &FileServer{
		files:    make(map[string][]byte),
		requests: make(map[string]int),
	}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == TokenEndpoint {
			id, secret, ok := r.BasicAuth()
			if !ok {
				_ = r.ParseForm()
				id, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
			}
			if id != ClientId || secret != ClientSecret {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			body, _ := json.Marshal(map[string]interface{}{
				"access_token": AccessToken,
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
			w.Header().Add("content-type", "application/json")
			w.Write(body)
			return
		}

		stub.mu.Lock()
		stub.requests[r.URL.Path]++
		body, ok := stub.files[r.URL.Path]
		stub.mu.Unlock()

		if r.Method != http.MethodGet || !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if stub.RequireToken && strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != AccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	return stub
}
