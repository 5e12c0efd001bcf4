package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/me", h.getProfile)
		r.Patch("/api/user/me", h.updateProfile)
		r.Get("/api/user/verify", h.verifySession)
		r.Patch("/api/user/password", h.changePassword)
		r.Delete("/api/user", h.deleteAccount)

		r.Post("/api/folders", h.createFolder)
		r.Get("/api/folders/root", h.listRootFolders)
		r.Get("/api/folders/{id}", h.getFolder)
		r.Patch("/api/folders/{id}", h.updateFolder)
		r.Patch("/api/folders/{id}/move", h.moveFolder)
		r.Patch("/api/folders/{id}/trash", h.trashFolder)
		r.Delete("/api/folders/{id}", h.deleteFolder)

		r.Get("/api/files/tree", h.getTree)
		r.Get("/api/files/{id}/details", h.getFileDetails)
		r.Patch("/api/files/{id}/move", h.moveFile)
		r.Patch("/api/files/{id}/trash", h.trashFile)
		r.Delete("/api/files/{id}", h.deleteFile)

		r.Post("/api/reminders", h.createReminder)
		r.Get("/api/reminders", h.listReminders)
		r.Get("/api/reminders/upcoming", h.listUpcomingReminders)
		r.Get("/api/reminders/past", h.listPastReminders)
		r.Get("/api/reminders/{id}", h.getReminder)
		r.Patch("/api/reminders/{id}", h.updateReminder)
		r.Patch("/api/reminders/{id}/toggle", h.toggleReminder)
		r.Delete("/api/reminders/{id}", h.deleteReminder)

		// routes that touch file contents also need the file key
		r.Group(func(r chi.Router) {
			r.Use(h.withFileKey)
			r.Post("/api/files", h.uploadFiles)
			r.Get("/api/files/{id}", h.downloadFile)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
