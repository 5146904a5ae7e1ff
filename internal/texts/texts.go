// Package texts reads dialogue transcripts and fetches their public-domain
// sources.
package texts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a transcript, dropping a leading UTF-8 byte order mark and
// converting CRLF line endings to LF.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// StripGutenbergBoilerplate removes the Project Gutenberg header and footer.
// Text without the markers is returned unchanged.
func StripGutenbergBoilerplate(text string) string {
	lines := strings.Split(text, "\n")
	startIdx := 0
	endIdx := len(lines)

	// Find start marker
	for i, line := range lines {
		if strings.Contains(line, "*** START OF") ||
			strings.Contains(line, "***START OF") ||
			strings.Contains(line, "*END*THE SMALL PRINT") {
			startIdx = i + 1
			break
		}
	}

	// Find end marker
	for i := len(lines) - 1; i >= startIdx; i-- {
		if strings.Contains(lines[i], "*** END OF") ||
			strings.Contains(lines[i], "***END OF") ||
			strings.Contains(lines[i], "End of Project Gutenberg") ||
			strings.Contains(lines[i], "End of the Project Gutenberg") {
			endIdx = i
			break
		}
	}

	if startIdx >= endIdx || (startIdx == 0 && endIdx == len(lines)) {
		return text
	}

	return strings.TrimSpace(strings.Join(lines[startIdx:endIdx], "\n")) + "\n"
}

// TrimToOpening drops everything before the paragraph that begins with
// opening, such as a translator's introduction or the list of persons. It
// reports false and returns text unchanged when no paragraph matches.
func TrimToOpening(text, opening string) (string, bool) {
	if opening == "" {
		return text, false
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 && strings.TrimSpace(lines[i-1]) != "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), opening) {
			return strings.Join(lines[i:], "\n"), true
		}
	}
	return text, false
}

// Download fetches url and stores the Gutenberg body at path, starting at
// the paragraph that begins with opening.
func Download(ctx context.Context, client *http.Client, url, path, opening string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	text := strings.ReplaceAll(string(bytes.TrimPrefix(body, utf8BOM)), "\r\n", "\n")
	text = StripGutenbergBoilerplate(text)

	if trimmed, ok := TrimToOpening(text, opening); ok {
		text = trimmed
	} else if opening != "" {
		slog.Warn("dialogue opening not found, keeping full text", "url", url, "opening", opening)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create text directory: %w", err)
	}
	return os.WriteFile(path, []byte(text), 0644)
}
