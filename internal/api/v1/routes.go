package v1

import (
	"taskhub/internal/api/v1/handlers"
	"taskhub/internal/middleware"
	"taskhub/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(app *fiber.App) {
	// Public
	app.Get("/test", handlers.Health)
	app.Post("/register", handlers.Register)
	app.Post("/login", handlers.Login)

	// Task
	taskRoutes := app.Group("/tasks", middleware.UseToken)
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/create", handlers.CreateTask)
	taskRoutes.Put("/update/:id", handlers.UpdateTask)
	taskRoutes.Delete("/delete/:id", handlers.DeleteTask)

	// Profile
	app.Put("/upload-picture", middleware.UseToken, handlers.UploadProfilePicture)
	app.Get("/profile", middleware.UseToken, handlers.GetProfile)

	// User search
	app.Get("/users", middleware.UseToken, handlers.SearchUsers)
}

// RegisterEventRoutes mounts the task event stream. Connections carry the
// same bearer credential as the REST endpoints (header or `token` query
// parameter) and are rejected with a 401 before the upgrade otherwise.
func RegisterEventRoutes(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", middleware.UseToken, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := &ws.Client{Conn: c}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			// Clients only listen; reads just detect disconnects.
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
