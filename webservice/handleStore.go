package webservice

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
	"github.com/DanDanTheMuffinMan/nova-memory-server/store"
)

func (wm *WebMaster) handleListMemory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		wm.fail(c, fault.Invalid("missing userId"))
		return
	}
	c.JSON(http.StatusOK, wm.memories.List(userID))
}

func (wm *WebMaster) handleStoreMemory(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Topic  string `json:"topic"`
		Value  string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Topic == "" || req.Value == "" {
		wm.fail(c, fault.Invalid("missing fields: userId, topic and value are required"))
		return
	}
	wm.memories.Append(req.UserID, store.MemoryEntry{Topic: req.Topic, Value: req.Value})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (wm *WebMaster) handleListJournal(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		wm.fail(c, fault.Invalid("missing userId"))
		return
	}
	c.JSON(http.StatusOK, wm.journals.List(userID))
}

func (wm *WebMaster) handleStoreJournal(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Title == "" || req.Content == "" {
		wm.fail(c, fault.Invalid("missing fields: userId, title and content are required"))
		return
	}
	wm.journals.Append(req.UserID, store.JournalEntry{Title: req.Title, Content: req.Content})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (wm *WebMaster) handleUploadImage(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		wm.fail(c, fault.Invalid("missing userId"))
		return
	}
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		wm.fail(c, fault.Invalid("missing image file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		wm.fail(c, fault.Execution(err))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	mediaID := wm.media.Append(userID, store.MediaItem{
		ContentType: contentType,
		Source:      c.PostForm("source"),
		Description: c.PostForm("description"),
	}, data)
	c.JSON(http.StatusOK, gin.H{"success": true, "mediaId": mediaID})
}

func (wm *WebMaster) handleListMedia(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		wm.fail(c, fault.Invalid("missing userId"))
		return
	}
	c.JSON(http.StatusOK, wm.media.List(userID))
}

func (wm *WebMaster) handleGetMedia(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		wm.fail(c, fault.Invalid("missing userId"))
		return
	}
	item, data, err := wm.media.Get(userID, c.Param("id"))
	if err != nil {
		wm.fail(c, err)
		return
	}
	c.Data(http.StatusOK, item.ContentType, data)
}
