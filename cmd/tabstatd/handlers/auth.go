package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierr "github.com/statops/tabstat/pkg/api/types/errors"
	apiusers "github.com/statops/tabstat/pkg/api/types/users"
	"github.com/statops/tabstat/pkg/domain"
	"github.com/statops/tabstat/pkg/domain/auth"
	kerr "github.com/statops/tabstat/pkg/domain/errors"
	kdbuser "github.com/statops/tabstat/pkg/domain/user/db"
)

// claimsContextKey is the echo.Context key under which TokenAuth
// stores the verified *auth.Claims of the request.
const claimsContextKey = "tabstat/claims"

// RegisterHandler creates an account and logs it in at once.
func RegisterHandler(dbUser kdbuser.Interface, authority *auth.Authority) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiusers.RegisterRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.UserName == "" || req.Password == "" {
			return apierr.BadRequest("username and password are required", nil)
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		user := domain.User{
			UserId:       uuid.NewString(),
			UserName:     req.UserName,
			Email:        req.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		if err := dbUser.Register(ctx, user); err != nil {
			if errors.Is(err, kerr.ErrAlreadyExists) {
				return apierr.Conflict(
					"username is already taken",
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		token, err := authority.Issue(user)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// LoginHandler exchanges a username and password for a bearer token.
func LoginHandler(dbUser kdbuser.Interface, authority *auth.Authority) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiusers.LoginRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.UserName == "" || req.Password == "" {
			return apierr.BadRequest("username and password are required", nil)
		}

		// a wrong username and a wrong password are not told apart,
		// so probing for account names learns nothing.
		user, err := dbUser.GetByName(ctx, req.UserName)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.Unauthorized("check username and password", err)
			}
			return apierr.InternalServerError(err)
		}

		if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
			if errors.Is(err, auth.ErrBadCredential) {
				return apierr.Unauthorized("check username and password", err)
			}
			return apierr.InternalServerError(err)
		}

		token, err := authority.Issue(user)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// TokenAuth verifies the Authorization header of each request and
// stores the claims in the request context.
//
// Requests routed to one of the skip paths pass through unverified.
func TokenAuth(authority *auth.Authority, skip ...string) echo.MiddlewareFunc {
	skipped := map[string]struct{}{}
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipped[c.Path()]; ok {
				return next(c)
			}

			token, ok := strings.CutPrefix(
				c.Request().Header.Get("Authorization"), "Bearer ",
			)
			if !ok || token == "" {
				return apierr.Unauthorized("set Authorization: Bearer <token>", nil)
			}

			claims, err := authority.Verify(token)
			if err != nil {
				return apierr.Unauthorized("token is expired or broken. log in again", err)
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// SetClaims puts claims where handlers look them up, as TokenAuth does.
func SetClaims(c echo.Context, claims *auth.Claims) {
	c.Set(claimsContextKey, claims)
}

func currentClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	return claims, ok
}
