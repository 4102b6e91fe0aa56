package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// SaveSnapshot converts a failed row's page HTML to markdown and writes it
// under dir for later diagnosis of selector breakage. Returns the written
// path.
func SaveSnapshot(dir, site string, row int, html string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		// Markdown conversion chokes on some malformed pages; keep the
		// raw HTML rather than losing the evidence.
		markdown = html
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-row%d.md", site, row))
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}
