package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/support-service/apps/api/echo"
	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, prin core.Principal) string {
	claims := echoapi.GetPrincipalClaims(prin)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func createSupport(t *testing.T, repo support.Repository, title string, ownerID int, status support.Status) support.Support {
	t.Helper()
	sup, err := repo.CreateSupport(context.Background(), support.Support{
		Title:       title,
		FileURL:     "http://files.test/" + title + ".pdf",
		OwnerID:     ownerID,
		SubmittedOn: time.Now().UTC(),
		Status:      status,
	})
	if err != nil {
		t.Fatalf("createSupport() failed: %v", err)
	}
	return sup
}

func checkCode(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
	}
}

func decodeSupport(t *testing.T, rec *httptest.ResponseRecorder) support.Support {
	t.Helper()
	var sup support.Support
	if err := json.Unmarshal(rec.Body.Bytes(), &sup); err != nil {
		t.Fatalf("decodeSupport() failed: %v", err)
	}
	return sup
}

func decodeSupports(t *testing.T, rec *httptest.ResponseRecorder) []support.Support {
	t.Helper()
	var sups []support.Support
	if err := json.Unmarshal(rec.Body.Bytes(), &sups); err != nil {
		t.Fatalf("decodeSupports() failed: %v", err)
	}
	return sups
}
