package webservice

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
	"github.com/DanDanTheMuffinMan/nova-memory-server/peripheral"
)

// Pointer fields distinguish "absent" from "zero": zero is a valid
// coordinate and a valid scroll direction boundary.
type moveRequest struct {
	X      *int `json:"x"`
	Y      *int `json:"y"`
	Smooth bool `json:"smooth"`
}

type typeRequest struct {
	Text string `json:"text"`
}

type keyRequest struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

type clickRequest struct {
	Button string `json:"button"`
	Double bool   `json:"double"`
}

type scrollRequest struct {
	Amount *int `json:"amount"`
}

func (wm *WebMaster) handleTypeText(c *gin.Context) {
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wm.fail(c, fault.Invalid("invalid request body"))
		return
	}
	if err := wm.control.TypeText(req.Text); err != nil {
		wm.fail(c, err)
		return
	}
	ok(c, fmt.Sprintf("typed %d characters", len(req.Text)))
}

func (wm *WebMaster) handlePressKey(c *gin.Context) {
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wm.fail(c, fault.Invalid("invalid request body"))
		return
	}
	if req.Key == "" {
		wm.fail(c, fault.Invalid("key is required"))
		return
	}
	key, err := peripheral.ResolveKey(req.Key)
	if err != nil {
		// Unknown key names are a client error on this route.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mods := peripheral.ResolveModifiers(req.Modifiers)
	if err := wm.control.PressKey(key, mods); err != nil {
		wm.fail(c, err)
		return
	}
	ok(c, fmt.Sprintf("pressed %s", req.Key))
}

func (wm *WebMaster) handleMoveMouse(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wm.fail(c, fault.Invalid("invalid request body"))
		return
	}
	if req.X == nil || req.Y == nil {
		wm.fail(c, fault.Invalid("x and y coordinates are required"))
		return
	}
	if err := wm.control.MoveMouse(*req.X, *req.Y, req.Smooth); err != nil {
		wm.fail(c, err)
		return
	}
	ok(c, fmt.Sprintf("moved to %d,%d", *req.X, *req.Y))
}

func (wm *WebMaster) handleClickMouse(c *gin.Context) {
	var req clickRequest
	// The body is optional on this route; an absent or unrecognized
	// button falls back to a left click.
	_ = c.ShouldBindJSON(&req)
	button := peripheral.ResolveButton(req.Button)
	if err := wm.control.ClickMouse(button, req.Double); err != nil {
		wm.fail(c, err)
		return
	}
	ok(c, fmt.Sprintf("clicked %s", button))
}

func (wm *WebMaster) handleScrollMouse(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		wm.fail(c, fault.Invalid("invalid request body"))
		return
	}
	if req.Amount == nil {
		wm.fail(c, fault.Invalid("amount is required"))
		return
	}
	if err := wm.control.ScrollMouse(*req.Amount); err != nil {
		wm.fail(c, err)
		return
	}
	ok(c, fmt.Sprintf("scrolled %d", *req.Amount))
}

func (wm *WebMaster) handleMousePosition(c *gin.Context) {
	x, y, err := wm.control.MousePosition()
	if err != nil {
		wm.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"position": gin.H{"x": x, "y": y},
	})
}
