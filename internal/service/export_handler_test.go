package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/sotien/internal/auth"
)

func get(t *testing.T, url, token string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestExportHandler(t *testing.T) {
	env := setupTestServer(t, nil)
	g := roommates(t, env, "")
	dinner(t, env, g, "")

	tests := []struct {
		path        string
		status      int
		contentType string
		magic       []byte
	}{
		{"/export/groups/" + g.ID + "/balances.xlsx", http.StatusOK, "spreadsheetml", []byte("PK")},
		{"/export/groups/" + g.ID + "/balances.pdf", http.StatusOK, "application/pdf", []byte("%PDF-")},
		{"/export/groups/missing/balances.pdf", http.StatusNotFound, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, env.url+tt.path, "")
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if tt.status != http.StatusOK {
				return
			}
			if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
				t.Errorf("content type = %q", ct)
			}
			if !strings.Contains(resp.Header.Get("Content-Disposition"), g.ID) {
				t.Errorf("content disposition = %q", resp.Header.Get("Content-Disposition"))
			}
			if !bytes.HasPrefix(body, tt.magic) {
				t.Errorf("body starts with %q", body[:min(len(body), 8)])
			}
		})
	}

	if !strings.Contains(scrapeMetrics(t, env), `sotien_statement_exports_total{format="pdf",result="error"} 1`) {
		t.Error("failed export not counted")
	}
}

func TestExportHandler_Auth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	env := setupTestServer(t, jwtManager)

	anToken, _ := jwtManager.Generate("user-an", "")
	strangerToken, _ := jwtManager.Generate("user-stranger", "")
	g := roommates(t, env, anToken)
	url := env.url + "/export/groups/" + g.ID + "/balances.xlsx"

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "garbage", http.StatusUnauthorized},
		{"not a member", strangerToken, http.StatusForbidden},
		{"member", anToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, url, tt.token)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
		})
	}
}
