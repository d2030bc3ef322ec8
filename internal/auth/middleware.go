package auth

import (
	"context"
	"errors"
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "contactbook/internal/errors"
)

// HeaderToken is the request header carrying the bearer token.
const HeaderToken = "x-auth-token"

const claimsContextKey = "auth_claims"

type userIDKey struct{}

// Gateway rejects requests without a valid token: a missing token is a 401,
// an invalid, expired or revoked one a 400, as is any token whose
// revocation status cannot be read. On success the caller's user ID
// is placed in the request context (see UserID).
func Gateway(tokens *JWTService, revoked RevocationStore) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + HeaderToken,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			claims, err := tokens.Verify(raw)
			if err != nil {
				return nil, err
			}
			isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: revocation lookup: %v", apperrors.ErrInvalidToken, err)
			}
			if isRevoked {
				return nil, apperrors.ErrInvalidToken
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !errors.Is(err, apperrors.ErrInvalidToken) {
				err = apperrors.ErrMissingToken
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), claims.UserID)))
			return next(c)
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user ID placed by Gateway, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// ClaimsFrom returns the verified claims of the current request, if any.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}
