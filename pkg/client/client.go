// Package client is the Go SDK for the ZipMyProject API. It also provides the
// explicit client-side state objects (Session, Cart, Catalog) that a frontend
// builds on: each is constructed with its dependencies injected, so tests can
// run isolated instances instead of sharing ambient singletons.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zipmyproject/internal/models"
)

// Client is an HTTP client for the ZipMyProject API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a new API client against the given base URL, e.g.
// "http://localhost:5000/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

type apiError struct {
	Error string `json:"error"`
}

// do sends one JSON request and decodes the JSON response into out. Non-2xx
// responses are returned as errors carrying the server's error message.
func (c *Client) do(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// AuthResponse is the login/signup response: a bearer token plus the user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a new account and returns its session token.
func (c *Client) Register(name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns a session token.
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile behind the attached token.
func (c *Client) Me() (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListProjects returns the public catalog.
func (c *Client) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns one active project.
func (c *Client) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := c.do(http.MethodGet, "/projects/"+id, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject adds a catalog entry (admin only).
func (c *Client) CreateProject(project *models.Project) (*models.Project, error) {
	var created models.Project
	if err := c.do(http.MethodPost, "/projects", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces a catalog entry's fields (admin only).
func (c *Client) UpdateProject(project *models.Project) (*models.Project, error) {
	var updated models.Project
	if err := c.do(http.MethodPut, "/projects/"+project.ID, project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject soft-deletes a catalog entry (admin only).
func (c *Client) DeleteProject(id string) error {
	return c.do(http.MethodDelete, "/projects/"+id, nil, nil)
}

// CheckoutProject is the project snapshot echoed back at checkout.
type CheckoutProject struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CheckoutPayment is the provider client data for driving the payment UI.
type CheckoutPayment struct {
	OrderID      string  `json:"orderId,omitempty"`
	ClientSecret string  `json:"clientSecret,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	KeyID        string  `json:"keyId,omitempty"`
}

// Checkout is the response to a create-order call.
type Checkout struct {
	Project CheckoutProject `json:"project"`
	Payment CheckoutPayment `json:"payment"`
}

// CreateOrder opens a payment intent for a project.
func (c *Client) CreateOrder(projectID, paymentMethod string) (*Checkout, error) {
	body := map[string]string{"projectId": projectID, "paymentMethod": paymentMethod}
	var resp Checkout
	if err := c.do(http.MethodPost, "/orders/create", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyParams is the client-side completion proof for a purchase.
type VerifyParams struct {
	PaymentID     string `json:"paymentId"`
	OrderID       string `json:"orderId,omitempty"`
	Signature     string `json:"signature,omitempty"`
	ProjectID     string `json:"projectId"`
	PaymentMethod string `json:"paymentMethod"`
}

// VerifyResponse reports a recorded purchase.
type VerifyResponse struct {
	Message      string `json:"message"`
	DownloadLink string `json:"downloadLink"`
	OrderID      string `json:"orderId"`
}

// VerifyOrder submits payment completion proof and records the purchase.
func (c *Client) VerifyOrder(params VerifyParams) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.do(http.MethodPost, "/orders/verify", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyPurchases returns the purchase history for the attached token.
func (c *Client) MyPurchases() ([]models.PurchaseSummary, error) {
	var purchases []models.PurchaseSummary
	if err := c.do(http.MethodGet, "/orders/my-purchases", nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// DownloadResponse carries the externally hosted asset link.
type DownloadResponse struct {
	DownloadLink string `json:"downloadLink"`
	ProjectTitle string `json:"projectTitle"`
}

// Download requests the download link for an owned project.
func (c *Client) Download(projectID string) (*DownloadResponse, error) {
	var resp DownloadResponse
	if err := c.do(http.MethodGet, "/orders/download/"+projectID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminOrders returns all orders with joined buyer/project info (admin only).
func (c *Client) AdminOrders() ([]models.AdminOrderSummary, error) {
	var orders []models.AdminOrderSummary
	if err := c.do(http.MethodGet, "/orders/admin/all", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SubmitContact sends a contact-form message.
func (c *Client) SubmitContact(name, email, subject, message string) error {
	body := map[string]string{"name": name, "email": email, "subject": subject, "message": message}
	return c.do(http.MethodPost, "/contact", body, nil)
}

// ContactMessages returns the admin contact inbox (admin only).
func (c *Client) ContactMessages() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := c.do(http.MethodGet, "/contact/admin/all", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageRead flags a contact message as read (admin only).
func (c *Client) MarkMessageRead(id string) error {
	return c.do(http.MethodPut, "/contact/"+id+"/read", nil, nil)
}
