package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// HTTPClient talks to the index set management API over HTTP with a bearer
// token.
type HTTPClient struct {
	baseURL string
	token   string
	hc      *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// ListResult mirrors the body of a successful list call. Count is the size
// of the whole permitted population, not of the returned page.
type ListResult struct {
	Count     int                       `json:"count"`
	IndexSets []*models.IndexSetSummary `json:"index_sets"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// statusError maps HTTP error statuses to the shared sentinel errors so
// callers can use errors.Is regardless of transport.
func statusError(statusCode int, message string) error {
	var sentinel error
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = common.ErrorUnauthorized
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusConflict:
		sentinel = common.ErrorConflict
	case http.StatusBadRequest:
		sentinel = common.ErrorBadRequest
	default:
		sentinel = common.ErrorInternal
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set(common.AuthHeaderName, common.AuthSchemePrefix+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return statusError(resp.StatusCode, er.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// ListIndexSets fetches one page of the permitted index sets. limit 0
// requests the whole permitted population.
func (c *HTTPClient) ListIndexSets(ctx context.Context, skip, limit int) (*ListResult, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var result ListResult
	if err := c.do(ctx, http.MethodGet, "/system/indices/index_sets", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetIndexSet(ctx context.Context, id string) (*models.IndexSetSummary, error) {
	var result models.IndexSetSummary
	if err := c.do(ctx, http.MethodGet, "/system/indices/index_sets/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateIndexSet(ctx context.Context, summary *models.IndexSetSummary) (*models.IndexSetSummary, error) {
	var result models.IndexSetSummary
	if err := c.do(ctx, http.MethodPost, "/system/indices/index_sets", nil, summary, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateIndexSet(ctx context.Context, id string, summary *models.IndexSetSummary) (*models.IndexSetSummary, error) {
	var result models.IndexSetSummary
	if err := c.do(ctx, http.MethodPut, "/system/indices/index_sets/"+url.PathEscape(id), nil, summary, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteIndexSet(ctx context.Context, id string, deleteIndices bool) error {
	query := url.Values{}
	query.Set("delete_indices", strconv.FormatBool(deleteIndices))
	return c.do(ctx, http.MethodDelete, "/system/indices/index_sets/"+url.PathEscape(id), query, nil, nil)
}
