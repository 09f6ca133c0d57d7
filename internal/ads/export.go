package ads

import (
	"context"
	"encoding/json"
	"fmt"
)

// ExportBibTeX fetches the BibTeX records for the given bibcodes. The
// returned text may hold fewer records than requested when some
// bibcodes are unknown; the caller reconciles against what it asked for.
func (c *Client) ExportBibTeX(ctx context.Context, bibcodes []string) (string, error) {
	if len(bibcodes) == 0 {
		return "", nil
	}

	body, err := json.Marshal(struct {
		Bibcode []string `json:"bibcode"`
	}{Bibcode: bibcodes})
	if err != nil {
		return "", fmt.Errorf("encoding export request: %w", err)
	}

	var out struct {
		Export string `json:"export"`
	}
	if err := c.do(ctx, "POST", c.baseURL+"/export/bibtex", body, &out); err != nil {
		return "", err
	}
	return out.Export, nil
}
