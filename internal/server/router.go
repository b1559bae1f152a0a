package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vistaran/helpdesk/internal/client/models"
	"github.com/vistaran/helpdesk/internal/logging"
)

// NewRouter wires the JSON API the client's remote store speaks.
func NewRouter(store *MemStore, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/tickets", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Tickets())
		})
		api.GET("/users", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Users())
		})
		api.GET("/technicians", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Technicians())
		})
		api.GET("/symptoms", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Symptoms())
		})
		api.GET("/files", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Files())
		})
		api.GET("/templates", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Templates())
		})

		api.POST("/tickets", func(c *gin.Context) {
			var t models.Ticket
			if err := c.ShouldBindJSON(&t); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created := store.CreateTicket(t)
			c.JSON(http.StatusCreated, created)
		})

		api.PATCH("/tickets/:id", func(c *gin.Context) {
			var patch models.Ticket
			if err := c.ShouldBindJSON(&patch); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updated, ok := store.UpdateTicket(c.Param("id"), patch)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
				return
			}
			c.JSON(http.StatusOK, updated)
		})

		api.GET("/tickets/watch", watchHandler(store, log))
	}

	return r
}

// watchHandler streams ticket snapshots as server-sent events: one event
// with the full collection immediately, then one per change.
func watchHandler(store *MemStore, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := store.Subscribe()
		defer cancel()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		send := func(snapshot []models.Ticket) bool {
			data, err := json.Marshal(snapshot)
			if err != nil {
				log.Error(c.Request.Context(), "failed to encode ticket snapshot", "err", err)
				return false
			}
			if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
				return false
			}
			flusher.Flush()
			return true
		}

		if !send(store.Tickets()) {
			return
		}

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case snapshot := <-ch:
				if !send(snapshot) {
					return
				}
			}
		}
	}
}
