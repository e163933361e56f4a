package localdata

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BielosX/wombat/pokenat/src/utils"
	"go.uber.org/zap"
)

const (
	IndexPath = "/index.json"
	DataPath  = "/data.json"
)

// Client reads the pre-built dataset published under <origin>/api. Bodies are passed
// through untouched and never cached.
type Client struct {
	baseUrl string
	client  *http.Client
	sugar   *zap.SugaredLogger
}

func NewClient(baseUrl string, client *http.Client, sugar *zap.SugaredLogger) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  client,
		sugar:   sugar,
	}
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	url := c.baseUrl + path
	c.sugar.Debugf("GET %s", url)
	var raw json.RawMessage
	if err := utils.GetJSON(ctx, c.client, url, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) GetIndex(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, IndexPath)
}

func (c *Client) GetPokedex(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, DataPath)
}
