package kycapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kycadmin/internal/models"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client talks to the upstream KYC REST API. It sends no credentials and
// never retries.
type Client struct {
	baseURL string
	http    *resty.Client
}

func NewClient(config models.APIConfiguration) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, &RequestError{Op: "create api client", Err: errors.New("api base url is empty")}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetLogger(zap.S()).
		SetRetryCount(0)

	if timeout := config.Timeout(); timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{baseURL: baseURL, http: client}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetRaw issues a GET and returns the body of a 2xx response unparsed.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(path)
	if err := check("get "+path, resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) ListBusinessActivities(ctx context.Context) ([]models.BusinessActivity, error) {
	body, err := c.GetRaw(ctx, PathBusinessActivities)
	if err != nil {
		return nil, err
	}

	var activities []models.BusinessActivity
	if err = json.Unmarshal(body, &activities); err != nil {
		return nil, &RequestError{Op: "decode business activities", Err: err}
	}
	return activities, nil
}

func (c *Client) CreateBusinessActivity(ctx context.Context, body models.BusinessActivityBody) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(PathBusinessActivities)
	return check("create business activity", resp, err)
}

func (c *Client) UpdateBusinessActivity(
	ctx context.Context,
	id models.ActivityID,
	body models.BusinessActivityBody,
) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id.String()).
		SetBody(body).
		Put(PathBusinessActivity)
	return check("update business activity", resp, err)
}

func (c *Client) DeleteBusinessActivity(ctx context.Context, id models.ActivityID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		Delete(PathBusinessActivity)
	return check("delete business activity", resp, err)
}

// UploadFiles sends one multipart POST: the file parts, then user_type,
// userid and bucket_name.
func (c *Client) UploadFiles(ctx context.Context, request models.UploadRequest) error {
	req := c.http.R().SetContext(ctx)

	var opened []io.Closer
	defer func() {
		for _, closer := range opened {
			_ = closer.Close()
		}
	}()

	for _, file := range request.Files {
		reader, err := file.Open()
		if err != nil {
			return &RequestError{Op: "open upload file " + file.Name, Err: err}
		}
		opened = append(opened, reader)
		req.SetFileReader(FieldFiles, file.Name, reader)
	}

	// Fields go after the files, in this order.
	req.SetMultipartFields(
		textField(FieldUserType, request.UserType),
		textField(FieldUserID, request.UserID),
		textField(FieldBucketName, request.BucketName),
	)

	resp, err := req.Post(PathUploadFiles)
	return check("upload files", resp, err)
}

func textField(name, value string) *resty.MultipartField {
	return &resty.MultipartField{
		Param:       name,
		ContentType: "text/plain; charset=utf-8",
		Reader:      strings.NewReader(value),
	}
}

func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return &RequestError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status()),
		}
	}
	return nil
}
