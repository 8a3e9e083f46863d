package middleware

import (
	"context"
	"net/http"
	"net/url"

	"finitefield.org/campaign-site/internal/admin/routes"
)

type routeInfoKeyType struct{}

// ResolvedRoute is the resolver's answer for the current request path.
type ResolvedRoute struct {
	Path            string
	Template        string
	ParentDashboard string
	Category        routes.Category
	Params          routes.Params
	Render          routes.Screen
}

// RouteInfo resolves each request path once against the screen registry and stores the
// parent dashboard and category on the context. Paths the registry does not know pass
// through untouched.
func RouteInfo(resolver *routes.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.EscapedPath()
			desc, params, ok := resolver.Resolve(path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			info := ResolvedRoute{
				Path:            path,
				Template:        desc.Template,
				ParentDashboard: desc.ParentDashboard,
				Category:        desc.Category,
				Params:          unescapeParams(params),
				Render:          desc.Render,
			}
			ctx := context.WithValue(r.Context(), routeInfoKeyType{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unescapeParams decodes wildcard values captured from the escaped path. Values that
// fail to decode are kept as captured.
func unescapeParams(params routes.Params) routes.Params {
	for name, value := range params {
		if decoded, err := url.PathUnescape(value); err == nil {
			params[name] = decoded
		}
	}
	return params
}

// WithResolvedRoute stores info on ctx. Used by tests and fragment renderers.
func WithResolvedRoute(ctx context.Context, info ResolvedRoute) context.Context {
	return context.WithValue(ctx, routeInfoKeyType{}, info)
}

// ResolvedRouteFromContext returns the resolved route, if the path matched a registered screen.
func ResolvedRouteFromContext(ctx context.Context) (ResolvedRoute, bool) {
	if ctx == nil {
		return ResolvedRoute{}, false
	}
	info, ok := ctx.Value(routeInfoKeyType{}).(ResolvedRoute)
	return info, ok
}
