package webservice

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (wm *WebMaster) handleCaptureScreen(c *gin.Context) {
	data, contentType, err := wm.capture.Still(c.Query("format"))
	if err != nil {
		wm.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func (wm *WebMaster) handleScreenInfo(c *gin.Context) {
	width, height, err := wm.capture.Info()
	if err != nil {
		wm.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"width": width, "height": height})
}
