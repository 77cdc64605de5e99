package gorouter

import (
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/httpapi"
	"github.com/goliatone/go-deskboard/pkg/identity"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) (dashboard.ViewerContext, error)

// LocalsViewerResolver reads the viewer from locals set by upstream middleware.
func LocalsViewerResolver(ctx router.Context) (dashboard.ViewerContext, error) {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	if viewer.UserID == "" {
		return viewer, dashboard.ErrMissingViewer
	}
	viewer.Locale = inferLocale(ctx)
	return viewer, nil
}

// BearerViewerResolver verifies the Authorization header. WebSocket clients that cannot
// set headers pass the token as ?token=.
func BearerViewerResolver(verifier *identity.Verifier) ViewerResolver {
	return func(ctx router.Context) (dashboard.ViewerContext, error) {
		header := ctx.Header("Authorization")
		if header == "" {
			if token := ctx.Query("token"); token != "" {
				header = "Bearer " + token
			}
		}
		viewer, err := httpapi.ViewerFromHeader(verifier, header)
		if err != nil {
			return viewer, err
		}
		viewer.Locale = inferLocale(ctx)
		return viewer, nil
	}
}

// StaticViewerResolver treats every request as userID.
func StaticViewerResolver(userID string) ViewerResolver {
	return func(ctx router.Context) (dashboard.ViewerContext, error) {
		return dashboard.ViewerContext{UserID: userID, Locale: inferLocale(ctx)}, nil
	}
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return parseAcceptLanguage(ctx.Header("Accept-Language"))
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}
