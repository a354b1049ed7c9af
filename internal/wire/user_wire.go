package wire

import (
	"user-panel/internal/adaptor"
	"user-panel/internal/data/repository"
	"user-panel/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== SELF-SERVICE ROUTES ====================
	// Any authenticated principal, regardless of role
	r.With(middleware.AuthSession(repo.Session, log)).Group(func(r chi.Router) {
		r.Get("/api/profile", userHandler.GetProfile)
		r.Post("/api/users_profile_update", userHandler.ProfileUpdate)
	})

	// ==================== ADMIN ROUTES ====================
	// Requires both a valid session AND the admin role
	r.With(
		middleware.AuthSession(repo.Session, log), // Check valid session
		middleware.Admin(repo.User, log),          // Check admin role
	).Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)          // GET /api/users?hobbies=chess
		r.Post("/", userHandler.CreateUser)        // POST /api/users
		r.Get("/{id}", userHandler.GetUser)        // GET /api/users/{user-id}
		r.Put("/{id}", userHandler.UpdateUser)     // PUT /api/users/{user-id}
		r.Patch("/{id}", userHandler.UpdateUser)   // PATCH /api/users/{user-id}
		r.Delete("/{id}", userHandler.DeleteUser)  // DELETE /api/users/{user-id}
	})
}
