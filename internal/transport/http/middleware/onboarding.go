package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

// UserGetter loads the user behind a request so the gate can evaluate
// their onboarding progress. Satisfied by repository.UserRepository.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// OnboardingGate blocks chat routes until the user has completed their
// profile and their verification has been approved. The response names
// the step the client should send the user to next.
func OnboardingGate(users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Unknown user"}}`, http.StatusUnauthorized)
				return
			}

			if step := domain.NextStep(user); step != domain.StepApproved {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintf(w, `{"error":{"code":"ONBOARDING_REQUIRED","message":"Complete onboarding to access chat","next_step":%q}}`, step)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
