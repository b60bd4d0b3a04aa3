package acquiring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"securepay/internal/engine/signing"
	"securepay/internal/platform/config"
	"securepay/internal/platform/models"
)

type Method string

const (
	MethodInit       Method = "Init"
	MethodGetState   Method = "GetState"
	MethodCheckOrder Method = "CheckOrder"
	MethodConfirm    Method = "Confirm"
	MethodCancel     Method = "Cancel"
)

// Client calls the acquiring API on behalf of one terminal. It holds only
// immutable configuration and is safe for concurrent use.
type Client struct {
	terminalKey string
	password    string

	signer     *signing.Signer
	transport  Transport
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	debug      bool
}

type Option func(*Client)

func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithSigner(s *signing.Signer) Option {
	return func(c *Client) { c.signer = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithDebug logs every outgoing request body. The lines are written at info
// level so the flag works without lowering logging.level.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

func New(terminalKey, password string, opts ...Option) *Client {
	c := &Client{
		terminalKey: terminalKey,
		password:    password,
		signer:      signing.NewSigner(),
		baseURL:     config.DefaultBaseURL,
		logger:      log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(c.baseURL, c.httpClient)
	}

	if c.debug {
		c.logger.Info().Str("terminal_key", c.terminalKey).Msg("created acquiring client for terminal")
	}

	return c
}

// NewFromConfig builds a client from the terminal and api config sections.
func NewFromConfig(terminal config.TerminalConfig, api config.APIConfig, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(api.BaseURL),
		WithHTTPClient(&http.Client{Timeout: api.Timeout}),
		WithDebug(terminal.Debug),
	}
	return New(terminal.Key, terminal.Password, append(base, opts...)...)
}

func (c *Client) TerminalKey() string {
	return c.terminalKey
}

func (c *Client) Init(ctx context.Context, req models.InitRequest) (*models.InitResponse, error) {
	req.TerminalKey = c.terminalKey
	req.Token = c.signer.Token(req.SigningFields(), c.password)

	var resp models.InitResponse
	if err := c.call(ctx, MethodInit, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetState(ctx context.Context, req models.GetStateRequest) (*models.GetStateResponse, error) {
	req.TerminalKey = c.terminalKey
	req.Token = c.signer.Token(req.SigningFields(), c.password)

	var resp models.GetStateResponse
	if err := c.call(ctx, MethodGetState, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CheckOrder(ctx context.Context, req models.CheckOrderRequest) (*models.CheckOrderResponse, error) {
	req.TerminalKey = c.terminalKey
	req.Token = c.signer.Token(req.SigningFields(), c.password)

	var resp models.CheckOrderResponse
	if err := c.call(ctx, MethodCheckOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm completes a two-stage payment that is in AUTHORIZED state.
func (c *Client) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResponse, error) {
	req.TerminalKey = c.terminalKey
	req.Token = c.signer.Token(req.SigningFields(), c.password)

	var resp models.ConfirmResponse
	if err := c.call(ctx, MethodConfirm, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Cancel(ctx context.Context, req models.CancelRequest) (*models.CancelResponse, error) {
	req.TerminalKey = c.terminalKey
	req.Token = c.signer.Token(req.SigningFields(), c.password)

	var resp models.CancelResponse
	if err := c.call(ctx, MethodCancel, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call encodes a signed request, posts it and decodes the response into out.
// Responses with Success=false are not errors here.
func (c *Client) call(ctx context.Context, method Method, req interface{}, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", method, err)
	}

	if c.debug {
		c.logger.Info().Str("method", string(method)).RawJSON("body", body).Msg("sending request")
	}

	data, err := c.transport.Post(ctx, method, body)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", method, ErrInvalidResponse, err)
	}

	return nil
}
