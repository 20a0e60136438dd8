package server

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"waypost/internal/middleware"
	"waypost/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ImageUploadResponse is the API response after storing an uploaded image.
type ImageUploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// imageAccepted checks the content type the client declared for the part.
// Clients that send the generic octet-stream default are judged by the
// filename extension instead.
func imageAccepted(file *multipart.FileHeader) bool {
	ct, _, _ := mime.ParseMediaType(file.Header.Get(fiber.HeaderContentType))
	if ct != "" && ct != "application/octet-stream" {
		return allowedImageTypes[ct]
	}
	return allowedImageExtensions[strings.ToLower(filepath.Ext(file.Filename))]
}

// UploadImage handles PUT /post-image. Unlike the GraphQL surface, this REST
// boundary enforces authentication itself. Files that are not PNG or JPEG are
// silently discarded and the request reports that no file arrived.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	ra := middleware.RequestAuthFrom(c)
	if !ra.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated!",
			"status":  fiber.StatusUnauthorized,
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No file provided!",
		})
	}

	if !imageAccepted(file) {
		observability.UploadsDiscarded.Inc()
		middleware.Logger.WarnContext(c.UserContext(), "upload discarded",
			"filename", file.Filename,
			"content_type", file.Header.Get(fiber.HeaderContentType),
			"user_id", ra.UserID)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No file provided!",
		})
	}

	// Prefix with a random UUID so repeated filenames never collide.
	// filepath.Base guards against path separators smuggled in the name.
	name := uuid.New().String() + "-" + filepath.Base(file.Filename)
	if err := c.SaveFile(file, filepath.Join(s.config.UploadDir, name)); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "storing upload failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not store file")
	}
	observability.UploadsStored.Inc()

	// Replacing a post's image retires the previous file in the background.
	if oldPath := c.FormValue("oldPath"); oldPath != "" {
		s.cleaner.Enqueue(oldPath)
	}

	return c.Status(fiber.StatusCreated).JSON(ImageUploadResponse{
		Message:  "File stored.",
		FilePath: "images/" + name,
	})
}
