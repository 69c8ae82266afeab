package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller's Actor in the request context. It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			actor, err := jwtService.ActorFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller set by AuthRequired. The zero Actor is
// returned for unauthenticated requests and is rejected by every service.
func ActorFromContext(ctx context.Context) user.Actor {
	actor, _ := ctx.Value(actorKey{}).(user.Actor)
	return actor
}
