package output

import (
	"fmt"
	"os"
	"path/filepath"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// SaveSnapshot converts a detail page to Markdown and writes it to
// dir/<number>.md, giving each scraped record an auditable source capture.
func SaveSnapshot(dir, number, html string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	mdStr, err := converter.ConvertString(html)
	if err != nil {
		return fmt.Errorf("failed to convert page to markdown: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, number+".md"), []byte(mdStr), 0644)
}
