package authn

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/sidenav/pkg/log"
	"github.com/pkg/errors"
)

var (
	ErrCancel = errors.New("cancel")
)

type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (User, error)
}

type AuthenticateFunc func(w http.ResponseWriter, r *http.Request) (User, error)

func (fn AuthenticateFunc) Authenticate(w http.ResponseWriter, r *http.Request) (User, error) {
	return fn(w, r)
}

// Chain tries each authenticator in turn. The first user found is attached to
// the request context, an authenticator may end the chain by returning
// ErrCancel once it has written a response.
func Chain(funcs ...MiddlewareOptionFunc) func(http.Handler) http.Handler {
	opts := NewMiddlewareOptions(funcs...)
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, auth := range opts.Authenticators {
				user, err := auth.Authenticate(w, r)
				if errors.Is(err, ErrCancel) {
					return
				}

				if err != nil {
					opts.OnError(w, r, err)
					return
				}

				if user == nil {
					continue
				}

				ctx = WithContextUser(ctx, user)
				ctx = log.WithAttrs(ctx, slog.String("user", user.UserSubject()+"@"+user.UserProvider()))

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			opts.UnauthorizedHandler.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

type OnErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

type MiddlewareOptions struct {
	UnauthorizedHandler http.Handler
	Authenticators      []Authenticator
	OnError             OnErrorFunc
}

type MiddlewareOptionFunc func(opts *MiddlewareOptions)

func NewMiddlewareOptions(funcs ...MiddlewareOptionFunc) *MiddlewareOptions {
	opts := &MiddlewareOptions{
		UnauthorizedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}),
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.ErrorContext(r.Context(), "authentication error", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithAuthenticators(authenticators ...Authenticator) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.Authenticators = authenticators
	}
}

func WithUnauthorizedHandler(h http.Handler) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.UnauthorizedHandler = h
	}
}

func WithOnError(fn OnErrorFunc) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.OnError = fn
	}
}
