package rest

import (
	"context"
	"errors"
	"net/http"
)

// Clé privée pour le contexte (évite les collisions entre packages).
type contextKey struct{ name string }

var actorCtxKey = &contextKey{"actor_id"}

// authenticated lit le cookie de session, vérifie le token et injecte
// l'ID de l'acteur dans le contexte de la requête.
// Cookie absent -> 401 ; token invalide ou expiré -> 403.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cookieName)
		if err != nil || cookie.Value == "" {
			respond(w, http.StatusUnauthorized, envelope{
				"message": "User is not authenticated. Please login.",
				"success": false,
			})
			return
		}

		actorID, err := s.identity.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			// Expiré et signature invalide restent distincts côté
			// domaine ; le client voit un 403 uniforme.
			respond(w, http.StatusForbidden, envelope{
				"message": "Invalid or expired token. Please login again.",
				"success": false,
			})
			return
		}

		ctx := context.WithValue(r.Context(), actorCtxKey, actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFrom récupère l'ID de l'acteur injecté par le middleware.
func actorFrom(ctx context.Context) (string, error) {
	id, ok := ctx.Value(actorCtxKey).(string)
	if !ok || id == "" {
		return "", errors.New("no authenticated actor in context")
	}
	return id, nil
}
