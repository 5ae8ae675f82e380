// Package api - HTTP-Client fuer den text-generation-inference Server.
// Dieses Modul enthaelt die Client-Struktur und ihre Basis-Methoden.
//
// Der Client spricht den lokalen TGI-Server ueber dessen REST-API an.
// Generate blockiert bis zur Antwort oder bis zum konfigurierten Timeout;
// Ping stellt eine minimale Probe-Anfrage fuer den Health-Check.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/mlserve/tgiscore/version"
)

// Client kapselt den Zugriff auf den TGI-Server. Mit [NewClient] erstellen.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient erstellt einen Client fuer die Basis-URL mit Request-Timeout
func NewClient(base *url.URL, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// Base gibt die Basis-URL des Backends zurueck
func (c *Client) Base() *url.URL {
	return c.base
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	if err := json.Unmarshal(body, &apiError); err != nil {
		// Use the full body as the message if we fail to decode a response.
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	var reqBody io.Reader
	if reqData != nil {
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	requestURL := c.base.JoinPath(path)

	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", fmt.Sprintf("tgiscore/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version()))

	respObj, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer respObj.Body.Close()

	respBody, err := io.ReadAll(respObj.Body)
	if err != nil {
		return err
	}

	if err := checkError(respObj, respBody); err != nil {
		return err
	}

	if len(respBody) > 0 && respData != nil {
		if err := json.Unmarshal(respBody, respData); err != nil {
			return err
		}
	}
	return nil
}

// Generate schickt einen Prompt mit Parametern an /generate und gibt den
// generierten Text zurueck. TGI antwortet je nach Version mit einem Objekt
// oder einem einelementigen Array; beide Formen werden akzeptiert.
func (c *Client) Generate(ctx context.Context, inputs string, parameters map[string]any) (string, error) {
	req := GenerateRequest{Inputs: inputs, Parameters: parameters}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/generate", req, &raw); err != nil {
		return "", err
	}

	// Pointer-Feld, damit ein leerer generierter Text von einem fehlenden
	// Feld unterscheidbar bleibt
	var resp struct {
		GeneratedText *string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &resp); err == nil && resp.GeneratedText != nil {
		return *resp.GeneratedText, nil
	}

	var list []GenerateResponse
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}

	return "", fmt.Errorf("unexpected generate response: %s", raw)
}

// Ping stellt die minimale Probe-Anfrage des Health-Checks. Healthy ist nur
// Status 200 oder 201; alles andere kommt als Fehler zurueck.
func (c *Client) Ping(ctx context.Context) error {
	req := GenerateRequest{
		Inputs:     "Meaning of life is",
		Parameters: map[string]any{"max_new_tokens": 2},
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
