package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// HttpRequest sends data as a JSON body and returns the response body.
// Non-2xx responses are returned as errors.
func HttpRequest(method, url string, header map[string]string, data interface{}) ([]byte, error) {

	var body io.Reader
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(requestBody)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return respBody, nil
}
