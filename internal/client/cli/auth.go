package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/indexkeeper/internal/client/client"
	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/server/auth"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// newAPIClient is a seam so tests can substitute a fake client.
var newAPIClient = func(baseURL, token string) apiClient {
	return client.NewHTTPClient(baseURL, token)
}

// Login prompts for the shared server secret and a grant list, mints a
// bearer token with them and attaches an API client to the console.
//
// Grants are entered comma separated, e.g.
// "indexsets:read:*, indexsets:delete:abc"; an empty line grants full
// access. The secret byte slice is securely wiped before returning.
func (a *App) Login() error {
	secret, err := getSecret("Enter server secret: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	line, err := getSimpleText(a.reader, "Enter grants, comma separated (empty for full access)", a.out)
	if err != nil {
		return err
	}

	grants := []string{"*"}
	if line != "" {
		grants = grants[:0]
		for _, g := range strings.Split(line, ",") {
			if g = strings.TrimSpace(g); g != "" {
				grants = append(grants, g)
			}
		}
	}

	token, err := auth.GenerateToken(a.config.Subject, grants, secret, a.config.TokenValidityDuration)
	if err != nil {
		return err
	}

	a.api = newAPIClient(a.config.ServerURL, token)
	fmt.Fprintf(a.out, "Token minted for %s, valid for %s\n", a.config.Subject, a.config.TokenValidityDuration)
	return nil
}

// Logout discards the API client and with it the minted token.
func (a *App) Logout() {
	a.api = nil
	fmt.Fprintln(a.out, "Logged out")
}
