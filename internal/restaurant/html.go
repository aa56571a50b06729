package restaurant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// columnAliases maps header text to the Restaurant field it feeds.
var columnAliases = map[string]string{
	"id":       "id",
	"name":     "name",
	"名稱":       "name",
	"餐廳":       "name",
	"type":     "cuisine",
	"cuisine":  "cuisine",
	"類型":       "cuisine",
	"price":    "price",
	"價格":       "price",
	"distance": "distance",
	"距離":       "distance",
	"rating":   "rating",
	"評分":       "rating",
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// FetchHTML downloads a page and parses the first restaurant table on it.
func FetchHTML(ctx context.Context, url string) ([]Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return ParseHTMLTable(resp.Body)
}

// ParseHTMLTable reads the first <table> whose header names at least a name,
// a cuisine and a price column. Rows that cannot be parsed are reported as errors.
func ParseHTMLTable(r io.Reader) ([]Restaurant, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var (
		found  bool
		result []Restaurant
		rowErr error
	)

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		columns := headerColumns(table)
		if !hasColumns(columns, "name", "cuisine", "price") {
			return true
		}
		found = true

		table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return true
			}
			rest, err := parseRow(cells, columns)
			if err != nil {
				rowErr = fmt.Errorf("row %d: %w", i, err)
				return false
			}
			result = append(result, rest)
			return true
		})
		return false
	})

	if rowErr != nil {
		return nil, rowErr
	}
	if !found {
		return nil, fmt.Errorf("no restaurant table found")
	}
	return result, nil
}

func headerColumns(table *goquery.Selection) map[string]int {
	columns := make(map[string]int)
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(cell.Text()))
		if field, ok := columnAliases[key]; ok {
			columns[field] = i
		}
	})
	return columns
}

func hasColumns(columns map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := columns[n]; !ok {
			return false
		}
	}
	return true
}

func parseRow(cells *goquery.Selection, columns map[string]int) (Restaurant, error) {
	text := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(idx).Text())
	}

	var (
		r   Restaurant
		err error
	)
	r.ID = text("id")
	r.Name = text("name")
	if r.Cuisine, err = ParseCuisine(text("cuisine")); err != nil {
		return Restaurant{}, err
	}
	if r.Price, err = parseInt(text("price")); err != nil {
		return Restaurant{}, fmt.Errorf("price: %w", err)
	}
	if v := text("distance"); v != "" {
		if r.Distance, err = parseInt(v); err != nil {
			return Restaurant{}, fmt.Errorf("distance: %w", err)
		}
	}
	if v := text("rating"); v != "" {
		if r.Rating, err = strconv.ParseFloat(nonNumeric.ReplaceAllString(v, ""), 64); err != nil {
			return Restaurant{}, fmt.Errorf("rating: %w", err)
		}
	}
	return r, nil
}

func parseInt(s string) (int, error) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no number in %q", s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
