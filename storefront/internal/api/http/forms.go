package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"food-storefront/storefront/internal/domain"
)

const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func parseRestaurantForm(r *http.Request) (domain.RestaurantInput, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return domain.RestaurantInput{}, errors.New("Invalid multipart form")
	}
	in := domain.RestaurantInput{
		RestaurantName: r.FormValue("restaurantName"),
		City:           r.FormValue("city"),
		Country:        r.FormValue("country"),
	}
	if raw := r.FormValue("deliveryTime"); raw != "" {
		deliveryTime, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("Invalid deliveryTime %q", raw)
		}
		in.DeliveryTime = deliveryTime
	}
	cuisines, err := parseCuisines(r.FormValue("cuisines"))
	if err != nil {
		return in, err
	}
	in.Cuisines = cuisines

	image, err := formImage(r, "imageFile")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}

// parseCuisines accepts a JSON array or a comma separated list.
func parseCuisines(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var cuisines []string
		if err := json.Unmarshal([]byte(raw), &cuisines); err != nil {
			return nil, errors.New("Invalid cuisines list")
		}
		return cuisines, nil
	}
	var cuisines []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}
	return cuisines, nil
}

func parseMenuForm(r *http.Request) (domain.MenuInput, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return domain.MenuInput{}, errors.New("Invalid multipart form")
	}
	in := domain.MenuInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("Invalid price %q", raw)
		}
		in.Price = price
	}
	image, err := formImage(r, "image")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}

// formImage returns nil when the field is absent.
func formImage(r *http.Request, field string) (*domain.ImageFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("Error retrieving the file")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, errors.New("Invalid file type. Only JPEG, PNG, GIF, WebP allowed")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("Failed to read file")
	}
	return &domain.ImageFile{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}
