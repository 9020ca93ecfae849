package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIRoot godoc
// @Summary API root
// @Description Lists all available endpoints.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func APIRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Maritime Vessel Tracking API",
		"version": "1.0.0",
		"endpoints": map[string]interface{}{
			"auth": map[string]string{
				"login":         "POST /api/login/ - Obtain JWT tokens",
				"register":      "POST /api/register/ - Register a new user",
				"token_refresh": "POST /api/token/refresh/ - Refresh JWT token",
			},
			"profile": map[string]string{
				"get_profile":    "GET /api/profile/ - Get your profile",
				"update_profile": "PUT /api/profile/update/ - Update your profile",
			},
			"users": map[string]string{
				"list_users":  "GET /api/users/ - List all users (staff only)",
				"get_user":    "GET /api/users/<id> - Get specific user",
				"update_user": "PUT /api/users/<id> - Update specific user",
			},
			"stats": map[string]string{
				"user_stats": "GET /api/stats/ - Get user statistics (staff only)",
			},
		},
	})
}
