// Package webservice exposes the gateway over HTTP and WebSocket.
package webservice

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/capture"
	"github.com/DanDanTheMuffinMan/nova-memory-server/config"
	"github.com/DanDanTheMuffinMan/nova-memory-server/device"
	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
	"github.com/DanDanTheMuffinMan/nova-memory-server/peripheral"
	"github.com/DanDanTheMuffinMan/nova-memory-server/store"
	"github.com/DanDanTheMuffinMan/nova-memory-server/stream"
)

// WebMaster wires every gateway component into one HTTP surface.
type WebMaster struct {
	cfg   *config.Config
	log   *zap.Logger
	state device.State

	control *peripheral.Controller
	capture *capture.Service
	streams *stream.Manager

	memories *store.MemoryStore
	journals *store.JournalStore
	media    *store.MediaStore
}

// New assembles the web surface from already-constructed components.
func New(
	cfg *config.Config,
	log *zap.Logger,
	state device.State,
	control *peripheral.Controller,
	frames *capture.Service,
	streams *stream.Manager,
	memories *store.MemoryStore,
	journals *store.JournalStore,
	media *store.MediaStore,
) *WebMaster {
	return &WebMaster{
		cfg:      cfg,
		log:      log,
		state:    state,
		control:  control,
		capture:  frames,
		streams:  streams,
		memories: memories,
		journals: journals,
		media:    media,
	}
}

// Router builds the gin engine with every route registered.
func (wm *WebMaster) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Nova Memory Server is running")
	})
	r.GET("/health", wm.handleHealth)

	r.POST("/control/keyboard/type", wm.handleTypeText)
	r.POST("/control/keyboard/key", wm.handlePressKey)
	r.POST("/control/mouse/move", wm.handleMoveMouse)
	r.POST("/control/mouse/click", wm.handleClickMouse)
	r.POST("/control/mouse/scroll", wm.handleScrollMouse)
	r.GET("/control/mouse/position", wm.handleMousePosition)

	r.GET("/capture/screen", wm.handleCaptureScreen)
	r.GET("/capture/screen/info", wm.handleScreenInfo)

	r.GET("/ws", wm.handleStreamWS)

	r.GET("/memory", wm.handleListMemory)
	r.POST("/memory", wm.handleStoreMemory)
	r.GET("/journal", wm.handleListJournal)
	r.POST("/journal", wm.handleStoreJournal)
	r.POST("/upload/image", wm.handleUploadImage)
	r.GET("/media", wm.handleListMedia)
	r.GET("/media/:id", wm.handleGetMedia)

	return r
}

// Run serves until the listener fails.
func (wm *WebMaster) Run() error {
	wm.log.Info("listening", zap.String("addr", wm.cfg.Listen))
	return wm.Router().Run(wm.cfg.Listen)
}

func (wm *WebMaster) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"peripherals": wm.state,
	})
}

// fail converts any gateway error into the structured response the wire
// contract promises. Nothing escapes a handler as a panic.
func (wm *WebMaster) fail(c *gin.Context, err error) {
	status := fault.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		wm.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
