// Package gemini implements the extraction adapter against the Gemini REST
// API: resumable file upload, processing-state polling, generateContent, and
// best-effort remote file cleanup.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/extract"
	"github.com/consultpro/interviewdoc/internal/report"
)

// Client implements extract.Extractor.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg.withDefaults(), httpClient: newHTTPClient(), log: logger}
}

type fileInfo struct {
	Name     string `json:"name"` // "files/..."
	URI      string `json:"uri"`
	State    string `json:"state"` // PROCESSING | ACTIVE | FAILED
	MimeType string `json:"mimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason  string                 `json:"finishReason"`
		SafetyRatings []extract.SafetyRating `json:"safetyRatings"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason   string                 `json:"blockReason"`
		SafetyRatings []extract.SafetyRating `json:"safetyRatings"`
	} `json:"promptFeedback"`
}

// All four harm categories disabled; interview audio regularly trips the
// default filters (competitor criticism, clinical side effects).
var safetyOff = []map[string]any{
	{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "BLOCK_NONE"},
}

// Extract uploads the audio, waits for the remote file to become active,
// runs generateContent with the mode's prompt, and decodes the structured
// content. The uploaded remote file is deleted on every exit path.
func (c *Client) Extract(ctx context.Context, req extract.Request) (*report.StructuredContent, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	prompt, err := extract.BuildPrompt(req.Mode)
	if err != nil {
		return nil, nil, err
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = extract.AudioMimeType(req.AudioPath)
	}

	c.log.Info("gemini.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"mode", string(req.Mode),
		"audio", filepath.Base(req.AudioPath),
		"mime_type", mimeType,
	)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	file, err := c.uploadFile(ctx, rid, req.AudioPath, mimeType)
	if err != nil {
		c.log.Error("gemini.extract.upload_failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, fmt.Errorf("upload audio: %v: %w", err, common.ErrAdapterFailure)
	}
	defer c.deleteFile(rid, file.Name)

	file, err = c.awaitActive(ctx, rid, file)
	if err != nil {
		c.log.Error("gemini.extract.processing_failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, err
	}

	resp, err := c.generateContent(ctx, rid, file, mimeType, prompt)
	if err != nil {
		c.log.Error("gemini.extract.generate_failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, fmt.Errorf("generate content: %v: %w", err, common.ErrAdapterFailure)
	}

	diag := extract.Diagnostics{BlockReason: resp.PromptFeedback.BlockReason}
	if diag.BlockReason != "" {
		c.log.Warn("gemini.extract.prompt_blocked", "req_id", rid, "block_reason", diag.BlockReason)
	}

	var text string
	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		diag.FinishReason = cand.FinishReason
		diag.SafetyRatings = cand.SafetyRatings
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		text = sb.String()
	}

	content, cleaned, err := extract.DecodeContent(text, diag, c.log)
	if err != nil {
		c.log.Error("gemini.extract.decode_failed",
			"req_id", rid,
			"error", err,
			"finish_reason", diag.FinishReason,
			"block_reason", diag.BlockReason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, cleaned, err
	}

	c.log.Info("gemini.extract.ok",
		"req_id", rid,
		"language", content.Language,
		"sections", len(content.StructuredAnalysis),
		"other_topics", len(content.OtherDimensions),
		"qa_entries", len(content.QALog),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, cleaned, nil
}

// uploadFile runs the resumable upload protocol: a start request that yields
// an upload URL, then a single upload+finalize request with the bytes.
func (c *Client) uploadFile(ctx context.Context, rid, path, mimeType string) (*fileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	startBody, err := json.Marshal(map[string]any{
		"file": map[string]any{"display_name": filepath.Base(path)},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal upload start: %w", err)
	}

	startURL := c.cfg.BaseURL + "/upload/v1beta/files?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL, bytes.NewReader(startBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(len(data)))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload start: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("upload start status %d", resp.StatusCode)
	}
	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, fmt.Errorf("upload start returned no upload URL")
	}

	c.log.Info("gemini.upload.start_ok", "req_id", rid, "bytes", len(data))

	req, err = http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload bytes: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("upload finalize status %d: %s", resp.StatusCode, truncateForLog(raw))
	}

	var out struct {
		File fileInfo `json:"file"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if out.File.Name == "" {
		return nil, fmt.Errorf("upload response missing file name")
	}
	c.log.Info("gemini.upload.ok", "req_id", rid, "file", out.File.Name, "state", out.File.State)
	return &out.File, nil
}

// awaitActive polls the remote file until it leaves PROCESSING.
func (c *Client) awaitActive(ctx context.Context, rid string, file *fileInfo) (*fileInfo, error) {
	for file.State == "PROCESSING" {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("audio processing: %v: %w", ctx.Err(), common.ErrAdapterFailure)
		case <-time.After(c.cfg.PollInterval):
		}
		next, err := c.getFile(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("poll file state: %v: %w", err, common.ErrAdapterFailure)
		}
		file = next
		c.log.Info("gemini.file.state", "req_id", rid, "file", file.Name, "state", file.State)
	}
	if file.State != "ACTIVE" {
		return nil, fmt.Errorf("audio processing ended in state %s: %w", file.State, common.ErrAdapterFailure)
	}
	return file, nil
}

func (c *Client) getFile(ctx context.Context, name string) (*fileInfo, error) {
	url := c.cfg.BaseURL + "/v1beta/" + name + "?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("get file status %d", resp.StatusCode)
	}
	var out fileInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode file info: %w", err)
	}
	return &out, nil
}

func (c *Client) generateContent(ctx context.Context, rid string, file *fileInfo, mimeType, prompt string) (*generateResponse, error) {
	body := map[string]any{
		"contents": []map[string]any{{
			"role": "user",
			"parts": []map[string]any{
				{"file_data": map[string]any{"mime_type": mimeType, "file_uri": file.URI}},
				{"text": prompt},
			},
		}},
		"safetySettings": safetyOff,
		"generationConfig": map[string]any{
			"temperature":      c.cfg.Temperature,
			"responseMimeType": "application/json",
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.cfg.BaseURL + "/v1beta/models/" + c.cfg.Model + ":generateContent?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	genStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	c.log.Info("gemini.generate.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(genStart).Milliseconds(),
	)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("generateContent status %d: %s", resp.StatusCode, truncateForLog(raw))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode generateContent response: %w", err)
	}
	return &out, nil
}

// deleteFile is best-effort cleanup of the uploaded remote file. It uses its
// own short deadline so it still runs when the caller's context is done.
func (c *Client) deleteFile(rid, name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	url := c.cfg.BaseURL + "/v1beta/" + name + "?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("gemini.file.delete_failed", "req_id", rid, "file", name, "error", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	c.log.Info("gemini.file.deleted", "req_id", rid, "file", name, "status", resp.StatusCode)
}

func truncateForLog(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
