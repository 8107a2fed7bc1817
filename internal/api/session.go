package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Session is the opaque credential returned by a login. It is only valid
// for the operation that obtained it.
type Session struct {
	Cookie string
}

func (s Session) apply(req *http.Request) {
	if s.Cookie != "" {
		req.Header.Set("Cookie", s.Cookie)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate logs in and returns a fresh session. No session is cached;
// each repository operation calls this first.
func (c *Client) Authenticate(ctx context.Context) (Session, error) {
	body := loginRequest{Email: c.creds.Email, Password: c.creds.Password}
	resp, err := c.do(ctx, http.MethodPost, "/api/login", Session{}, body)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	defer resp.Body.Close()
	drain(resp)

	if !ok(resp) {
		return Session{}, &AuthenticationError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}
	return Session{Cookie: sessionCookie(resp)}, nil
}

// sessionCookie turns Set-Cookie headers into a Cookie header value,
// keeping only name=value pairs. Unparsable headers are forwarded as sent.
func sessionCookie(resp *http.Response) string {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return strings.Join(resp.Header.Values("Set-Cookie"), ", ")
	}

	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
