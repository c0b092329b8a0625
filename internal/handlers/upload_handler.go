package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// maxUploadSize caps the multipart body at 10MB.
const maxUploadSize = 10 << 20

// UploadHandler stores uploaded files under the public upload directory.
type UploadHandler struct {
	UploadDir string
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{UploadDir: uploadDir}
}

// UploadFileHandler accepts exactly one file under the "file" field, stores
// it under a generated collision-resistant name and returns its public URL.
func (h *UploadHandler) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Fichier trop volumineux ou format invalide")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Aucun fichier dans la requête")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "Nom de fichier manquant")
		return
	}

	fileName := generateFileName(header.Filename)
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		log.WithError(err).Error("Failed to create upload folder")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out, err := os.Create(filepath.Join(h.UploadDir, fileName))
	if err != nil {
		log.WithError(err).Error("Failed to save file")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		log.WithError(err).Error("Failed to write file")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.WithField("filename", fileName).Info("File uploaded")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"url":      requestScheme(r) + "://" + r.Host + "/uploads/" + fileName,
		"filename": fileName,
	})
}

// generateFileName builds <timestamp>_<8-hex>.<ext>, defaulting the extension
// to jpg when the original name has none.
func generateFileName(original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = "jpg"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return time.Now().Format("20060102_150405") + "_" + suffix + "." + ext
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
