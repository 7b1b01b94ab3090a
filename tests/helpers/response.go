// response.go
//
// Server-side data and lead-capture service for the Terravista estates site
// Copyright (c) 2026 Terravista Realty Advisors
//
// This file is part of estates.
// estates is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// estates is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with estates.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Envelope mirrors the service's JSON response envelope.
type Envelope struct {
	Success      bool              `json:"success"`
	Data         json.RawMessage   `json:"data"`
	Count        int64             `json:"count"`
	AffectedRows int64             `json:"affectedRows"`
	Error        string            `json:"error"`
	Fields       map[string]string `json:"fields"`
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// ParseEnvelope decodes the response body into the standard envelope.
func ParseEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	var env Envelope
	ParseJSON(t, resp, &env)
	return env
}

// AssertSuccessList verifies the list envelope and its row count.
func AssertSuccessList(t *testing.T, resp *http.Response, expectedCount int64) Envelope {
	t.Helper()
	AssertStatus(t, resp, http.StatusOK)
	env := ParseEnvelope(t, resp)
	if !env.Success {
		t.Errorf("Expected success envelope, got error: %s", env.Error)
	}
	if env.Count != expectedCount {
		t.Errorf("Expected count %d, got %d", expectedCount, env.Count)
	}
	return env
}

// AssertFailure verifies the failure envelope and status.
func AssertFailure(t *testing.T, resp *http.Response, expectedStatus int) Envelope {
	t.Helper()
	AssertStatus(t, resp, expectedStatus)
	env := ParseEnvelope(t, resp)
	if env.Success {
		t.Error("Expected failure envelope, got success")
	}
	if env.Error == "" {
		t.Error("Expected error message in failure envelope")
	}
	return env
}
