package authn

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

var ErrNoUser = errors.New("no user in context")

type contextKey string

const contextKeyUser contextKey = "authnUser"

func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok {
		return nil, errors.WithStack(ErrNoUser)
	}

	return user, nil
}

func WithContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserKey identifies the authenticated user of the request, for rate
// limiting purposes.
func UserKey(r *http.Request) (string, error) {
	user, err := ContextUser(r.Context())
	if err != nil {
		return "", errors.WithStack(err)
	}

	return user.UserProvider() + "-" + user.UserSubject(), nil
}
