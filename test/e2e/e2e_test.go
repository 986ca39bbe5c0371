//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

var baseURL string

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	os.Exit(m.Run())
}

type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func doRequest(t *testing.T, method, path string, body io.Reader, contentType string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func uploadRoster(t *testing.T, content string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "e2e.json")
	part.Write([]byte(content))
	mw.Close()

	resp, data := doRequest(t, http.MethodPost, "/roster/upload", &buf, mw.FormDataContentType())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: %d %s", resp.StatusCode, data)
	}
}

func TestAttendanceFlow(t *testing.T) {
	uploadRoster(t, `[{"name":"Ann","rollNo":"1","enrollmentNo":"E1"},{"name":"Bob","rollNo":"2","enrollmentNo":"E2"}]`)

	t.Run("nothing present yet", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodGet, "/export/xlsx?present_only=true", nil, "")
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d %s", resp.StatusCode, data)
		}
	})

	t.Run("mark and export", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodPut, "/attendance/0", strings.NewReader(`{"mark":"present"}`), "application/json")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("set mark: %d %s", resp.StatusCode, data)
		}

		resp, data = doRequest(t, http.MethodGet, "/export/txt?present_only=true", nil, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("export: %d %s", resp.StatusCode, data)
		}
		if !strings.Contains(string(data), "Total Records: 1") {
			t.Fatalf("unexpected report:\n%s", data)
		}
	})

	t.Run("report", func(t *testing.T) {
		resp, data := doRequest(t, http.MethodPost, "/report", nil, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("report: %d %s", resp.StatusCode, data)
		}
		var out apiResponse
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		fmt.Printf("report response: %s\n", out.Data)
	})
}
