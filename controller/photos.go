package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fotostand/catalog"
	"fotostand/cooldown"
	"fotostand/deletion"
	"fotostand/index"
	"fotostand/ingest"
	"fotostand/naming"
	"fotostand/storage"
	"fotostand/utils"
)

var (
	uploader  *ingest.Coordinator
	photoList *catalog.Service
	remover   *deletion.Coordinator
	guard     *cooldown.Guard
	photos    index.PhotoIndex
	eventDays []string
)

// InitPhotos wires the photo handlers. days is the fixed set of valid
// event-day codes.
func InitPhotos(store storage.ObjectStore, idx index.PhotoIndex, g *cooldown.Guard, publicBase string, days []string) {
	photos = idx
	uploader = &ingest.Coordinator{Store: store, Index: idx, PublicBase: publicBase}
	photoList = &catalog.Service{Index: idx}
	remover = &deletion.Coordinator{Store: store, Index: idx}
	guard = g
	eventDays = days
}

func requireAdmin(c *gin.Context) bool {
	userRole, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user role not found"})
		return false
	}
	ok, err := utils.AuthorizeUser(userRole.(string), "admin")
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User unauthorized"})
		return false
	}
	return true
}

func dayParam(c *gin.Context) (string, bool) {
	day := c.Param("day")
	if !slices.Contains(eventDays, day) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event day"})
		return "", false
	}
	return day, true
}

// UploadPhotos receives a multipart batch under the "photos" field and
// runs it through the upload coordinator. Files with bad names or failed
// transfers are reported individually; the batch itself always completes.
func UploadPhotos(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo files provided"})
		return
	}
	headers := form.File["photos"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo files provided"})
		return
	}

	files := make([]ingest.File, 0, len(headers))
	for _, header := range headers {
		files = append(files, ingest.File{
			Name: header.Filename,
			Open: func() (io.ReadCloser, error) {
				f, err := header.Open()
				return f, err
			},
		})
	}

	result := uploader.Upload(c.Request.Context(), day, files, func(p ingest.Progress) {
		log.Printf("upload day %s: %d/%d (%d%%)", day, p.Processed, p.Total, p.Percent)
	})

	c.JSON(http.StatusOK, gin.H{
		"uploaded": result.Uploaded,
		"failures": result.Failures,
		"total":    len(headers),
	})
}

// ListPhotos returns one page of a day's photos in ascending number
// order, with the exact total for the active filter.
func ListPhotos(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var number *int
	if raw := c.Query("number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number must be an integer"})
			return
		}
		number = &n
	}

	result, err := photoList.List(ctx, day, number, int64(page))
	if err != nil {
		log.Println("Error listing photos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting photos"})
		return
	}

	limit := photoList.PageSize
	if limit <= 0 {
		limit = catalog.DefaultPageSize
	}
	c.JSON(http.StatusOK, gin.H{
		"photos":     result.Items,
		"total":      result.Total,
		"page":       page,
		"limit":      limit,
		"totalPages": int(math.Ceil(float64(result.Total) / float64(limit))),
	})
}

// DeletePhoto removes a single photo. The client already dropped the row
// from its visible list; a non-2xx answer tells it to refresh instead.
func DeletePhoto(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	if _, ok := dayParam(c); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	photo, err := photos.FindByID(ctx, c.Param("id"))
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	if err := remover.DeleteOne(ctx, photo); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting photo, refresh the list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true})
}

type deleteSelectionRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// DeleteSelected removes an explicitly selected set of photos (local
// scope): objects concurrently, then one delete-by-ids on the index.
func DeleteSelected(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	if _, ok := dayParam(c); !ok {
		return
	}

	var req deleteSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request Body"})
		return
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Failed", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	selected, err := photos.FindByIDs(ctx, req.IDs)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ids"})
		return
	}
	if err := remover.DeleteSelection(ctx, selected); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting selection, refresh the list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": len(selected)})
}

type purgeRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// PurgeDay deletes every photo of an event day (global scope). The body
// must carry the typed confirmation phrase, e.g. "DELETE 07".
func PurgeDay(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req purgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Request Body"})
		return
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Failed", "details": err.Error()})
		return
	}

	deleted, err := remover.PurgeDay(c.Request.Context(), day, req.Confirmation)
	if errors.Is(err, deletion.ErrConfirmationMismatch) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Confirmation phrase does not match",
			"expected": deletion.ConfirmPhrase(day),
		})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Purge failed partway, refresh to see the remaining photos",
			"deleted": deleted,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// LookupPhoto is the public photo search. Searching is always free; only
// repeat downloads are cooldown-gated.
func LookupPhoto(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	rows, _, err := photos.Query(ctx, index.Query{Day: day, Number: &number, Limit: 1})
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching photo"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"number": rows[0].Number,
		"url":    rows[0].URL,
		"name":   naming.Key(day, rows[0].Number),
	})
}

// CheckCooldown reports how many minutes remain before the photo may be
// downloaded again. 0 means go ahead.
func CheckCooldown(c *gin.Context) {
	day, number, ok := cooldownParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"minutes": guard.Check(day, number)})
}

// RecordDownload marks a completed download, starting a fresh window.
func RecordDownload(c *gin.Context) {
	day, number, ok := cooldownParams(c)
	if !ok {
		return
	}
	if err := guard.Record(day, number); err != nil {
		log.Println("Error persisting cooldown:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording download"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true})
}

func cooldownParams(c *gin.Context) (string, int, bool) {
	day, ok := dayParam(c)
	if !ok {
		return "", 0, false
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be a positive integer"})
		return "", 0, false
	}
	return day, number, true
}

// UploadInFlight lets the admin panel warn before navigating away while
// a batch is still running.
func UploadInFlight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"in_flight": uploader.InFlight()})
}
