package templates

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/models"
)

// typeMarkers flag a template folder as shipping a data type definition.
var typeMarkers = []string{"schema.json", "types.ts"}

// Scan discovers templates laid out as one folder per template under root.
// Results come back in directory order. An unreadable root yields an empty list.
func Scan(root string) []models.TemplateInfo {
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.WithFields(logrus.Fields{"root": root, "error": err}).Warn("template scan failed")
		return []models.TemplateInfo{}
	}

	out := make([]models.TemplateInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := entry.Name()
		dir := filepath.Join(root, folder)
		name := displayName(folder)

		info := models.TemplateInfo{
			ID:       folder,
			Name:     name,
			Category: categorize(folder),
		}
		if readme, err := os.ReadFile(filepath.Join(dir, "README.md")); err == nil {
			info.HasReadme = true
			info.Description = firstParagraphLine(readme)
		}
		if info.Description == "" {
			info.Description = fmt.Sprintf("%s template for professional websites", name)
		}
		for _, marker := range typeMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				info.HasTypes = true
				break
			}
		}
		out = append(out, info)
	}
	return out
}

func displayName(folder string) string {
	words := strings.Split(folder, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func categorize(folder string) string {
	switch {
	case strings.Contains(folder, "dj"), strings.Contains(folder, "music"):
		return models.CategoryCreative
	case strings.Contains(folder, "portfolio"), strings.Contains(folder, "personal"):
		return models.CategoryPersonal
	default:
		return models.CategoryBusiness
	}
}

// firstParagraphLine returns the first non-blank line that is not a markdown heading.
func firstParagraphLine(readme []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(readme))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.TrimSpace(line)
	}
	return ""
}
