package ads

import (
	"context"
	"net/url"
	"strconv"
)

// Doc is one search hit.
type Doc struct {
	Bibcode string   `json:"bibcode"`
	Title   []string `json:"title"`
	Author  []string `json:"author"`
	Year    string   `json:"year"`
}

// SearchResult is one page of search hits plus the total match count.
type SearchResult struct {
	Docs     []Doc `json:"docs"`
	NumFound int   `json:"num_found"`
	Start    int   `json:"start"`
}

// Search queries the ADS search endpoint, returning the page of results
// beginning at start. rows <= 0 uses DefaultRows.
func (c *Client) Search(ctx context.Context, query string, start, rows int) (*SearchResult, error) {
	if rows <= 0 {
		rows = DefaultRows
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("start", strconv.Itoa(start))
	q.Set("rows", strconv.Itoa(rows))
	q.Set("fl", "bibcode,title,author,year")
	q.Set("sort", "pubdate desc")

	var out struct {
		Response struct {
			Docs     []Doc `json:"docs"`
			NumFound int   `json:"numFound"`
			Start    int   `json:"start"`
		} `json:"response"`
	}
	if err := c.do(ctx, "GET", c.baseURL+"/search/query?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	return &SearchResult{
		Docs:     out.Response.Docs,
		NumFound: out.Response.NumFound,
		Start:    start,
	}, nil
}
