package router // router wires handlers to their HTTP routes

import (
    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/handler"
    "github.com/hamzaidr/lounge-station-booking/internal/middleware"
    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and uptime checks probe this.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication surface.  Unauthenticated
// token operations live under /v1/auth; /v1/me requires a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotating refresh: revokes the presented token and returns a new pair.
    g.POST("/refresh", a.Refresh)
    // Non-rotating: a new access token against the same refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout works from either a bearer token or a refresh token in the
    // body, so it stays outside the JWT middleware.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleMember))
    auth.GET("/me", a.Me)
}

// RegisterLounge registers the lounge floor surface: station browsing,
// the operator session lifecycle, bookings and the loyalty profile.
func RegisterLounge(e *echo.Echo, st *handler.StationHandler, se *handler.SessionHandler, bo *handler.BookingHandler, pr *handler.ProfileHandler, jwtSecret string) {
    // Any authenticated user can browse the floor and manage their own
    // bookings and profile.
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleMember))

    g.GET("/stations", st.List)
    g.GET("/stations/:id", st.Get)

    g.POST("/bookings", bo.Create)
    g.GET("/bookings", bo.List)

    g.GET("/profile", pr.Get)

    // Session lifecycle is operated from the front desk only.
    ops := e.Group("/v1/stations/:id")
    ops.Use(middleware.JWTAuth(jwtSecret))
    ops.Use(middleware.RequireRole(model.RoleAdmin))

    ops.POST("/start", se.Start)
    ops.POST("/pause", se.Pause)
    ops.POST("/resume", se.Resume)
    ops.POST("/stop", se.Stop)
}
