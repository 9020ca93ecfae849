package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vesseltrack/internal/auth"
	"vesseltrack/internal/errors"
	"vesseltrack/internal/handler"
	"vesseltrack/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/", handler.APIRoot)
	api.POST("/register/", authHandler.Register)
	api.POST("/login/", authHandler.Login)
	api.POST("/token/refresh/", authHandler.Refresh)

	// Secured routes: the bearer token is validated and the principal is
	// resolved from the store, so staff/role checks see current state
	// rather than the claims snapshot.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.PrincipalContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			userID, ok := claims.UserID()
			if !ok {
				return nil, auth.ErrInvalidToken
			}
			user, err := userService.GetUser(c.Request().Context(), userID)
			if err != nil {
				return nil, auth.ErrInvalidToken
			}
			return auth.PrincipalFromUser(user), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	// Profile routes
	secured.GET("/profile/", userHandler.Profile)
	secured.PUT("/profile/update/", userHandler.UpdateProfile)

	// User management routes
	secured.GET("/users/", userHandler.ListUsers)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.GET("/stats/", userHandler.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
