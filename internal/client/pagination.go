package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// pageStyle is decided once from the first page of a collection.
type pageStyle int

const (
	pageSingle pageStyle = iota
	pageCursor
	pageOffset
)

func (s pageStyle) String() string {
	switch s {
	case pageCursor:
		return "cursor"
	case pageOffset:
		return "offset"
	default:
		return "single"
	}
}

// detectPageStyle inspects which continuation field the first page carries.
// A null next_url still marks the cursor protocol.
func detectPageStyle(body []byte) pageStyle {
	switch {
	case gjson.GetBytes(body, "next_url").Exists():
		return pageCursor
	case gjson.GetBytes(body, "totalResults").Exists():
		return pageOffset
	default:
		return pageSingle
	}
}

// drain fetches every page of the collection at path below base and returns
// the records in server order.
func (c *Client) drain(ctx context.Context, base, path string) ([]json.RawMessage, error) {
	firstURL := joinURL(base, path)

	body, records, err := c.fetchPage(ctx, firstURL)
	if err != nil {
		return nil, err
	}

	style := detectPageStyle(body)
	c.observePage(style, firstURL, len(records))

	switch style {
	case pageCursor:
		return c.drainCursor(ctx, base, firstURL, body, records)
	case pageOffset:
		return c.drainOffset(ctx, firstURL, body, records)
	default:
		return records, nil
	}
}

func (c *Client) drainCursor(ctx context.Context, base, firstURL string, body []byte, records []json.RawMessage) ([]json.RawMessage, error) {
	fetched := map[string]struct{}{firstURL: {}}

	for {
		next := gjson.GetBytes(body, "next_url").String()
		if next == "" {
			return records, nil
		}

		nextURL := joinURL(base, next)
		if _, seen := fetched[nextURL]; seen {
			return nil, &capi.ProtocolError{
				Method:  http.MethodGet,
				URL:     nextURL,
				Message: "next_url points at a page already fetched",
				Err:     capi.ErrPaginationCycle,
			}
		}

		fetched[nextURL] = struct{}{}

		var page []json.RawMessage

		var err error

		body, page, err = c.fetchPage(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		c.observePage(pageCursor, nextURL, len(page))

		records = append(records, page...)
	}
}

// drainOffset continues from startIndex = fetched+1 and stops once
// totalResults <= fetched+1. The comparison is against fetched+1, not
// fetched, so a final page holding a single record is never requested.
func (c *Client) drainOffset(ctx context.Context, firstURL string, body []byte, records []json.RawMessage) ([]json.RawMessage, error) {
	total := gjson.GetBytes(body, "totalResults").Int()

	separator := "?"
	if strings.Contains(firstURL, "?") {
		separator = "&"
	}

	for {
		start := len(records) + 1
		if total <= int64(start) {
			return records, nil
		}

		pageURL := firstURL + separator + constants.StartIndexParam + "=" + strconv.Itoa(start)

		pageBody, page, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		c.observePage(pageOffset, pageURL, len(page))

		if len(page) == 0 {
			return nil, &capi.ProtocolError{
				Method:  http.MethodGet,
				URL:     pageURL,
				Message: "empty page before totalResults " + strconv.FormatInt(total, 10) + " was reached",
				Err:     capi.ErrPaginationStalled,
			}
		}

		records = append(records, page...)

		if t := gjson.GetBytes(pageBody, "totalResults"); t.Exists() {
			total = t.Int()
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, url string) ([]byte, []json.RawMessage, error) {
	resp, err := c.authenticatedCall(ctx, http.MethodGet, url, nil, http.StatusOK)
	if err != nil {
		return nil, nil, err
	}

	if !gjson.ValidBytes(resp.Body) {
		return nil, nil, &capi.ProtocolError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    "response is not valid JSON",
		}
	}

	var records []json.RawMessage

	gjson.GetBytes(resp.Body, "resources").ForEach(func(_, value gjson.Result) bool {
		records = append(records, json.RawMessage(value.Raw))

		return true
	})

	return resp.Body, records, nil
}

func (c *Client) observePage(style pageStyle, url string, count int) {
	if c.metrics != nil {
		c.metrics.ObservePage(style.String())
	}

	c.debug("Fetched page", map[string]interface{}{
		"url":     url,
		"style":   style.String(),
		"records": count,
	})
}
