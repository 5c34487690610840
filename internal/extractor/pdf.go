// Package extractor pulls plain text out of uploaded PDF statements,
// one string per page, for the line parser to pattern-match.
package extractor

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds extraction so an adversarial PDF cannot balloon memory.
const maxPages = 500

// Text extracts the text of every page, in page order. A page that
// yields no extractable text contributes nothing; that is not an error.
// Panics inside the PDF library are recovered into an error so a corrupt
// upload never takes the request down.
func Text(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	if numPages > maxPages {
		numPages = maxPages
	}

	// Row reconstruction keeps columns of a statement on one line, which
	// the transaction pattern depends on. Fall back to plain text for
	// pages where it yields nothing.
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := pageByRows(page)
		if text == "" {
			text = pagePlainText(page)
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	return pages, nil
}

// Combined joins all page texts with newline separators.
func Combined(data []byte) (string, error) {
	pages, err := Text(data)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

// pageByRows groups the page's text objects by Y coordinate into rows,
// sorts each row left to right, and joins rows top to bottom.
func pageByRows(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	// PDF Y runs bottom-to-top, so rows sort descending.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var parts []string
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > 15 {
				// Large horizontal gap marks a column boundary.
				parts = append(parts, "  ")
			}
			parts = append(parts, item.s)
			prevX = item.x
		}
		line := strings.TrimSpace(strings.Join(parts, ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pagePlainText uses the library's font-mapped extraction path.
func pagePlainText(page pdf.Page) string {
	fontNames := page.Fonts()
	fonts := make(map[string]*pdf.Font, len(fontNames))
	for _, name := range fontNames {
		f := page.Font(name)
		fonts[name] = &f
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
