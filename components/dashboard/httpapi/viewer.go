package httpapi

import (
	"net/http"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/pkg/identity"
)

// ViewerFromHeader verifies the Authorization header value and maps its claims to a viewer.
func ViewerFromHeader(verifier *identity.Verifier, header string) (dashboard.ViewerContext, error) {
	claims, err := verifier.VerifyHeader(header)
	if err != nil {
		return dashboard.ViewerContext{}, err
	}
	return dashboard.ViewerContext{UserID: claims.Subject(), Roles: claims.Roles}, nil
}

// BearerResolver resolves viewers from JWT bearer tokens.
func BearerResolver(verifier *identity.Verifier) dashboard.ViewerResolver {
	return func(r *http.Request) (dashboard.ViewerContext, error) {
		return ViewerFromHeader(verifier, r.Header.Get("Authorization"))
	}
}

// StaticResolver treats every request as userID. Intended for local runs without an
// identity provider.
func StaticResolver(userID string) dashboard.ViewerResolver {
	return func(*http.Request) (dashboard.ViewerContext, error) {
		return dashboard.ViewerContext{UserID: userID}, nil
	}
}
