package api

import (
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHttpClient records the last request and replays a canned response
type MockHttpClient struct {
	StatusCode int
	Body       string
	Err        error

	LastRequest *fhttp.Request
	LastBody    []byte
	Calls       int
	IdleClosed  bool
	body        *MockResponseBody
}

// Do implements Doer
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Calls++
	m.LastRequest = req
	if req.Body != nil {
		m.LastBody, _ = io.ReadAll(req.Body)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	status := m.StatusCode
	if status == 0 {
		status = 200
	}
	m.body = NewMockResponseBody([]byte(m.Body))
	return &fhttp.Response{
		StatusCode: status,
		Body:       m.body,
		Header:     make(fhttp.Header),
	}, nil
}

// CloseIdleConnections mirrors tls_client.HttpClient
func (m *MockHttpClient) CloseIdleConnections() {
	m.IdleClosed = true
}
