package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var Cloudinary *cloudinary.Cloudinary

// InitializeCloudinary configures the image CDN client from CLOUDINARY_URL.
// Uploads are skipped (not fatal) when the variable is absent so local
// development without credentials still works.
func InitializeCloudinary() {
	cloudinaryURL := os.Getenv("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
		return
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Println("Warning: failed to initialize Cloudinary:", err)
		return
	}
	Cloudinary = cld
}

// UploadRoomImage pushes one base64 payload (raw or data-URL) to Cloudinary
// and returns the secure URL.
func UploadRoomImage(base64Data string, roomID uint, index int) (string, error) {
	if Cloudinary == nil {
		return "", fmt.Errorf("cloudinary not initialized")
	}
	if base64Data == "" {
		return "", fmt.Errorf("empty image payload")
	}

	// Strip a data-URL prefix if present; the SDK wants the full data URL,
	// so rebuild it with a known mime type.
	payload := base64Data
	if i := strings.Index(base64Data, ","); i != -1 {
		payload = base64Data[i+1:]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("room_%d_%d_%d", roomID, index, time.Now().Unix())
	overwrite := false

	res, err := Cloudinary.Upload.Upload(ctx, "data:image/jpeg;base64,"+payload, uploader.UploadParams{
		Folder:       "rentaroom/rooms",
		PublicID:     publicID,
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %v", err)
	}

	return res.SecureURL, nil
}

// DeleteRoomImage destroys the Cloudinary asset behind the given URL. Best
// effort: the database row is the source of truth.
func DeleteRoomImage(imageURL string) error {
	if Cloudinary == nil || imageURL == "" {
		return nil
	}

	publicID := extractPublicID(imageURL)
	if publicID == "" {
		return fmt.Errorf("failed to extract public ID from URL: %s", imageURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := Cloudinary.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}

func extractPublicID(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) < 2 {
		return ""
	}

	pathParts := strings.Split(parts[1], "/")
	if len(pathParts) == 0 {
		return ""
	}

	startIdx := 0
	if strings.HasPrefix(pathParts[0], "v") {
		startIdx = 1
	}

	publicID := strings.Join(pathParts[startIdx:], "/")
	if dotIdx := strings.LastIndex(publicID, "."); dotIdx != -1 {
		publicID = publicID[:dotIdx]
	}
	return publicID
}
