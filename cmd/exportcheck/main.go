package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Dev harness: exercises the export flow end to end against a running
// server. Needs API_TOKEN (a valid user JWT) and optionally API_BASE_URL.
//
//	API_TOKEN=eyJ... go run ./cmd/exportcheck

const defaultBaseURL = "http://localhost:3000/api"

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type documentListItem struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

type documentList struct {
	Documents []documentListItem `json:"documents"`
}

type exportResult struct {
	Id          string `json:"id"`
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"size_bytes"`
	DownloadURL string `json:"download_url"`
}

func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	token := os.Getenv("API_TOKEN")
	if token == "" {
		color.Red("API_TOKEN is not set")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Export Flow Check\n")

	// 1. Pick a document
	color.Yellow("\n1. Listing documents")
	var list documentList
	if err := getJSON(baseURL+"/document/v1", token, &list); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if len(list.Documents) == 0 {
		color.Red("No documents found. Generate one first.")
		os.Exit(1)
	}
	doc := list.Documents[0]
	color.Green("Using document [%s] %q", doc.Id[:8], doc.Title)

	// 2. Export in both formats, then download and verify size
	for _, format := range []string{"docx", "pdf"} {
		color.Yellow("\n2. Exporting as %s", format)
		var res exportResult
		body, _ := json.Marshal(map[string]string{"format": format})
		err := postJSON(baseURL+"/document/v1/"+doc.Id+"/export", token, body, &res)
		if err != nil {
			color.Red("Export failed: %v", err)
			continue
		}
		color.Green("Created %s (%d bytes)", res.Filename, res.SizeBytes)

		n, err := download(baseURL+"/document/v1/exports/"+res.Id+"/download", token)
		if err != nil {
			color.Red("Download failed: %v", err)
			continue
		}
		if n == res.SizeBytes {
			color.Green("Downloaded %d bytes (matches)", n)
		} else {
			color.Red("Downloaded %d bytes, expected %d", n, res.SizeBytes)
		}
	}

	// 3. History should list the new exports
	color.Yellow("\n3. Fetching export history")
	var history struct {
		Total int64 `json:"total"`
	}
	if err := getJSON(baseURL+"/document/v1/exports", token, &history); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("%d exports on record", history.Total)

	color.Cyan("\n✅ Check Complete")
}

func getJSON(url, token string, out interface{}) error {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return doJSON(req, out)
}

func postJSON(url, token string, body []byte, out interface{}) error {
	req, _ := http.NewRequest("POST", url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return doJSON(req, out)
}

func doJSON(req *http.Request, out interface{}) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("bad response (%d): %s", resp.StatusCode, string(raw))
	}
	if !env.Success {
		return fmt.Errorf("%s (status %d)", env.Message, resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func download(url, token string) (int64, error) {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	return io.Copy(io.Discard, resp.Body)
}
