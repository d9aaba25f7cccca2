package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/model"
)

// MonthlySummary fetches the totals and transactions of one month.
func (c *Client) MonthlySummary(ctx context.Context, userID int64, year int, month time.Month) (*model.Summary, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	query := url.Values{}
	query.Set("month", strconv.Itoa(int(month)))
	query.Set("year", strconv.Itoa(year))

	var summary model.Summary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/summary/user/%d", userID), query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
