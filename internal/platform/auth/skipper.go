package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication. These are
// infrastructure endpoints that load balancers and monitoring probes hit
// without credentials.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// AuthSkipper returns true for requests whose path should skip
// authentication. Pass it as the Skipper on JWTConfig or to
// DevAuthMiddleware so health checks stay reachable without a bearer token.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether the given path is a public infrastructure
// endpoint that bypasses auth.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
