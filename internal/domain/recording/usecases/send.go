package usecases

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// uploadTimeout is generous because recordings can be large media files.
const uploadTimeout = 120 * time.Second

// modelTier selects the transcription model on the API side.
const modelTier = "small"

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 500

// ErrFileNotFound means the local file to upload does not exist or is not
// a regular file. No network I/O is attempted in that case.
var ErrFileNotFound = errors.New("file does not exist")

// APIError is a non-2xx response from the transcription API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API responded %d: %s", e.Status, e.Body)
}

// Send uploads a recording to the transcription API.
type Send struct {
	APIURL string
	Token  string

	// FieldName for the multipart file part; "file" when empty.
	FieldName string

	// HTTPClient overrides the default client in tests.
	HTTPClient *http.Client
}

// Execute POSTs the file as multipart/form-data and returns the raw
// response body. Interpreting the response schema is the caller's job.
func (s *Send) Execute(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if s.APIURL == "" {
		return nil, errors.New("no API URL configured: set RECORD_SEND_API_URL or pass --api-url")
	}

	endpoint, err := url.Parse(s.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("model", modelTier)
	endpoint.RawQuery = query.Encode()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fieldName := s.FieldName
	if fieldName == "" {
		fieldName = "file"
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(fieldName, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: uploadTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending file to API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(respBody), maxErrorBody)}
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
