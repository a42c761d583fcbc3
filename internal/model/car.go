package model

import "time"

// Car status values.  A car is either publicly listed or sold; there is no
// other state and rows are never hard-deleted.
const (
    CarStatusAvailable = "available"
    CarStatusSold      = "sold"
)

// Car mirrors the `cars` table.  Brand/model/year/km/fuel/transmission/price
// and the description are the editable listing fields; owner and listing
// time are fixed at upload.
type Car struct {
    ID           uint64    `json:"id"`           // cars.id
    OwnerID      uint64    `json:"owner_id"`     // cars.owner_id (references users.id)
    Brand        string    `json:"brand"`        // cars.brand
    Model        string    `json:"model"`        // cars.model
    Year         int       `json:"year"`         // cars.year
    KM           int64     `json:"km"`           // cars.km (odometer, kilometers)
    FuelType     string    `json:"fuel_type"`    // cars.fuel_type
    Transmission string    `json:"transmission"` // cars.transmission
    Price        int64     `json:"price"`        // cars.price
    Description  string    `json:"description"`  // cars.description (may be empty)
    Status       string    `json:"status"`       // cars.status ('available' | 'sold')
    ListedAt     time.Time `json:"listed_at"`    // cars.listed_at
}

// CarImage mirrors the `car_images` table.  Ordering by ID defines the
// display order; the first image by ID doubles as the listing thumbnail.
// There is no update or delete path for image rows.
type CarImage struct {
    ID         uint64    `json:"id"`                 // car_images.id
    CarID      uint64    `json:"car_id"`             // car_images.car_id
    URL        string    `json:"url"`                // car_images.url
    AltText    *string   `json:"alt_text,omitempty"` // car_images.alt_text (nullable)
    UploadedAt time.Time `json:"uploaded_at"`        // car_images.uploaded_at
}
