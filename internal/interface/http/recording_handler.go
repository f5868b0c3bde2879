package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/interface/middleware"
	"github.com/oksasatya/quiz-history-api/pkg/response"
)

// MaxAudioBytes caps multipart uploads.
const MaxAudioBytes = 25 << 20

type RecordingHandler struct {
	Owner  *app.OwnershipService
	Query  *app.QueryService
	Logger *logrus.Logger

	// MaxAudioBytes caps the whole multipart body of UploadAudio.
	MaxAudioBytes int64
}

func NewRecordingHandler(owner *app.OwnershipService, query *app.QueryService, logger *logrus.Logger) *RecordingHandler {
	return &RecordingHandler{Owner: owner, Query: query, Logger: logger, MaxAudioBytes: MaxAudioBytes}
}

type createRecordingRequest struct {
	Audio string `json:"audio" binding:"required"`
	Title string `json:"title" binding:"required,max=200"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// Get GET /api/recordings/:id. A missing recording is data: null.
func (h *RecordingHandler) Get(c *gin.Context) {
	var uri idParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := h.Query.Recording(c.Request.Context(), middleware.PrincipalFrom(c), uri.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, "recording")
}

// Create POST /api/recordings
func (h *RecordingHandler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req createRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := h.Owner.CreateRecording(c.Request.Context(), p, req.Audio, req.Title)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, rec, "recording created")
}

// UploadAudio POST /api/recordings/audio (multipart field "file")
func (h *RecordingHandler) UploadAudio(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxAudioBytes)
	fh, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		msg := "must be at most " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes"
		response.Abort(c, http.StatusRequestEntityTooLarge, "audio file too large", "too_large", map[string]string{"file": msg})
		return
	}
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "file is required", "validation", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Owner.UploadAudio(c.Request.Context(), p, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"audio": url}, "audio uploaded")
}

// Search GET /api/recordings/search?q=
func (h *RecordingHandler) Search(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	recs, err := h.Owner.SearchRecordings(c.Request.Context(), p, q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, recs, "recordings")
}

// Delete DELETE /api/recordings/:id
func (h *RecordingHandler) Delete(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var uri idParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := h.Owner.DeleteRecording(c.Request.Context(), p, uri.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, "recording removed")
}
