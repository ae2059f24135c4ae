package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	rooms := api.Group("/rooms", handler.AuthRequired)
	rooms.Get("", handler.ListRooms)
	rooms.Post("", handler.CreateRoom)
	rooms.Post("/join", handler.JoinRoom)
	rooms.Get("/:id/members", handler.ListRoomMembers)
	rooms.Post("/:id/members/:userID/active", handler.SetMemberActive)
	rooms.Post("/:id/invite", handler.RegenerateInvite)
	rooms.Get("/:id/settings", handler.GetRoomSettings)
	rooms.Put("/:id/settings", handler.UpdateRoomSettings)
	rooms.Get("/:id/cycles", handler.ListCycles)
	rooms.Post("/:id/cycles", handler.CreateCycle)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("/:id", handler.GetCycle)
	cycles.Put("/:id", handler.UpdateCycle)
	cycles.Get("/:id/weeks/:week", handler.GetWeekView)
	cycles.Get("/:id/missed-doses", handler.ListMissedDoses)
	cycles.Post("/:id/missed-doses", handler.RecordMissedDose)
	cycles.Delete("/:id/missed-doses/:date", handler.RemoveMissedDose)
	cycles.Get("/:id/items", handler.ListItems)
	cycles.Post("/:id/items", handler.CreateItem)
	cycles.Post("/:id/items/reorder", handler.ReorderItems)
	cycles.Post("/:id/items/:itemID/logs/:date", handler.ToggleConsumption)
	cycles.Get("/:id/logs", handler.ListConsumptionLogs)
	cycles.Get("/:id/reactions", handler.ListReactions)
	cycles.Post("/:id/reactions", handler.CreateReaction)

	items := api.Group("/items", handler.AuthRequired)
	items.Put("/:id", handler.UpdateItem)
	items.Delete("/:id", handler.DeleteItem)

	reactions := api.Group("/reactions", handler.AuthRequired)
	reactions.Delete("/:id", handler.DeleteReaction)

	api.Get("/symptoms", handler.AuthRequired, handler.ListSymptoms)

	transfers := api.Group("/transfers", handler.AuthRequired)
	transfers.Get("", handler.ListTransfers)
	transfers.Post("", handler.CreateTransfer)
	transfers.Post("/:token/accept", handler.AcceptTransfer)
	transfers.Post("/:token/decline", handler.DeclineTransfer)
	transfers.Post("/:token/cancel", handler.CancelTransfer)

	subscription := api.Group("/subscription", handler.AuthRequired)
	subscription.Get("", handler.GetSubscription)
	subscription.Put("", handler.UpdateSubscription)
}
