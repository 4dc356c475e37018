package gcal

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes requested from the user: event write access plus read access to
// the calendar list for destination selection.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/calendar.calendarlist.readonly",
}

// TokenSource builds an oauth2.TokenSource from the client secret and the
// cached token file. When no usable token is cached it runs the
// installed-app consent flow: it starts a loopback listener on a free
// port, prints the consent URL, and waits for the redirect. Refreshed or
// newly obtained tokens are written back to tokenPath with 0600
// permissions.
func TokenSource(ctx context.Context, secretPath, tokenPath string) (oauth2.TokenSource, error) {
	secret, err := os.ReadFile(secretPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("gcal: client secret not found at %s; download it from the Google Cloud Console", secretPath)
		}
		return nil, fmt.Errorf("gcal: reading client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(secret, oauthScopes...)
	if err != nil {
		return nil, fmt.Errorf("gcal: parsing client secret: %w", err)
	}

	tok, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		tok, err = authorize(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	// ReuseTokenSource refreshes expired tokens transparently; the
	// persisting wrapper writes any new token back to disk.
	return &persistingTokenSource{
		src:  oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx, tok)),
		path: tokenPath,
		last: tok.AccessToken,
	}, nil
}

// persistingTokenSource saves tokens to disk whenever the access token
// changes, so refreshes survive across runs.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	path string
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, fmt.Errorf("gcal: obtaining token: %w", err)
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := saveToken(p.path, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("gcal: reading token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("gcal: token file %s is corrupted; delete it and authorize again: %w", path, err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		// Expired and unrefreshable; force a fresh consent flow.
		return nil, nil
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("gcal: encoding token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("gcal: writing token: %w", err)
	}
	return nil
}

// authorize runs the browser consent flow with a loopback redirect.
func authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("gcal: starting redirect listener: %w", err)
	}
	defer listener.Close()

	cfg.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callback{err: fmt.Errorf("gcal: oauth state mismatch")}
			return
		}
		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, "authorization declined", http.StatusBadRequest)
			results <- callback{err: fmt.Errorf("gcal: authorization declined: %s", errMsg)}
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this tab and return to campsched.")
		results <- callback{code: q.Get("code")}
	})}
	go server.Serve(listener)
	defer server.Close()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(os.Stderr, "\nOpen this URL in your browser to authorize campsched:\n\n  %s\n\n", authURL)

	var cb callback
	select {
	case cb = <-results:
	case <-ctx.Done():
		return nil, fmt.Errorf("gcal: waiting for authorization: %w", ctx.Err())
	}
	if cb.err != nil {
		return nil, cb.err
	}

	tok, err := cfg.Exchange(ctx, cb.code)
	if err != nil {
		return nil, fmt.Errorf("gcal: exchanging authorization code: %w", err)
	}
	return tok, nil
}

func randomState() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("gcal: generating oauth state: %w", err)
	}
	return fmt.Sprintf("%x", buf), nil
}
