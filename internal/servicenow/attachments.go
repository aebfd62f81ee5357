package servicenow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/car1bo/snowattach/internal/httpclient"
)

// Attachment is a record from the Attachment API. ServiceNow serializes all
// field values as strings, size included.
type Attachment struct {
	SysID        string `json:"sys_id"`
	FileName     string `json:"file_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    string `json:"size_bytes"`
	TableName    string `json:"table_name"`
	TableSysID   string `json:"table_sys_id"`
	SysCreatedOn string `json:"sys_created_on"`
	DownloadLink string `json:"download_link"`
}

// Size returns the attachment size in bytes, or 0 if unknown.
func (a *Attachment) Size() int64 {
	n, err := strconv.ParseInt(a.SizeBytes, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type attachmentListResponse struct {
	Result []*Attachment `json:"result"`
}

type attachmentResponse struct {
	Result *Attachment `json:"result"`
}

// ListAttachments fetches attachment metadata for a record.
func (c *Client) ListAttachments(ctx context.Context, table, recordSysID string) ([]*Attachment, error) {
	query := "table_name=" + table + "^table_sys_id=" + recordSysID
	endpoint := "/attachment?sysparm_query=" + url.QueryEscape(query)

	var response attachmentListResponse
	if err := c.doRequestWithRetry(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Result, nil
}

// GetAttachment fetches metadata for a single attachment.
func (c *Client) GetAttachment(ctx context.Context, sysID string) (*Attachment, error) {
	endpoint := "/attachment/" + url.PathEscape(sysID)

	var response attachmentResponse
	if err := c.doRequestWithRetry(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}
	if response.Result == nil {
		return nil, ErrAttachmentNotFound
	}

	return response.Result, nil
}

// AttachmentURL returns the file endpoint for an attachment sys_id.
func (c *Client) AttachmentURL(sysID string) string {
	return c.session.BaseURL + "/attachment/" + url.PathEscape(sysID) + "/file"
}

// DownloadAttachment streams an attachment file. The caller owns the returned
// body. The declared size is -1 when the server does not send Content-Length.
// Transport failures are not retried; they surface as-is.
func (c *Client) DownloadAttachment(ctx context.Context, sysID string) (io.ReadCloser, int64, string, error) {
	if err := c.init(ctx); err != nil {
		return nil, 0, "", err
	}

	reqURL := c.AttachmentURL(sysID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, "", fmt.Errorf("create request: %w", err)
	}

	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", wrapAPIError(err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, "", wrapAPIError(httpclient.NewHTTPError(resp.StatusCode, apiErrorMessage(body)))
	}

	return resp.Body, resp.ContentLength, resp.Header.Get("Content-Type"), nil
}
