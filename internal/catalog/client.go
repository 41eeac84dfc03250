package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("bookstore service unavailable")

// Client talks to the bookstore service. All calls take a context and
// classify transport failures as ErrUnavailable; non-2xx responses carry
// the server's message when one can be extracted.
type Client struct {
	BaseURL string
	Client  *http.Client

	// Token, when set, is sent as a bearer token on mutating calls.
	Token string
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type listResponse struct {
	Books []Entry `json:"livros"`
}

// List fetches the whole catalog in the service's order.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/livros_list", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return lr.Books, nil
}

// Create submits a new entry, form-encoded. The price string must already be
// period-normalized. The service assigns the id and echoes the stored entry.
func (c *Client) Create(ctx context.Context, name, quantity, price string) (Entry, error) {
	form := url.Values{}
	form.Set("nome", name)
	form.Set("quantidade", quantity)
	form.Set("valor", price)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/livro_adiciona", strings.NewReader(form.Encode()))
	if err != nil {
		return Entry{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	resp, err := c.do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Entry{}, serverError(resp)
	}

	var e Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("decode created entry: %w", err)
	}
	return e, nil
}

// Update modifies the entry keyed by its name and returns the stored fields.
func (c *Client) Update(ctx context.Context, name string, p UpdatePayload) (Entry, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Entry{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.BaseURL+"/livro_update?nome="+url.QueryEscape(name), bytes.NewReader(body))
	if err != nil {
		return Entry{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Entry{}, serverError(resp)
	}

	var e Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("decode updated entry: %w", err)
	}
	return e, nil
}

// Delete removes the entry keyed by its name.
func (c *Client) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.BaseURL+"/livro_del?nome="+url.QueryEscape(name), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// serverError extracts the best available message from an error response.
// Backends for this contract have spelled the field "mesage", "message" and
// "error" over time, so all three are accepted before falling back to the
// HTTP status.
func serverError(resp *http.Response) error {
	var body struct {
		Mesage  string `json:"mesage"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		_ = json.Unmarshal(raw, &body)
	}

	msg := body.Mesage
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return fmt.Errorf("%s (status=%d)", msg, resp.StatusCode)
}
