package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/ekaraca/carmarket/internal/model"
)

// ImageRepo persists car image metadata.  Files themselves live under the
// public images directory; only URLs and alt texts are stored here.
type ImageRepo struct{ DB *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{DB: db} }

// ListByCar returns a car's images ordered by id, which defines the display
// order.  A non-positive car id yields an empty list without a query.
func (r *ImageRepo) ListByCar(ctx context.Context, carID uint64) ([]model.CarImage, error) {
    if carID == 0 {
        return []model.CarImage{}, nil
    }
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id, car_id, url, alt_text, uploaded_at FROM car_images WHERE car_id=? ORDER BY id", carID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    images := make([]model.CarImage, 0)
    for rows.Next() {
        var img model.CarImage
        var alt sql.NullString
        if err := rows.Scan(&img.ID, &img.CarID, &img.URL, &alt, &img.UploadedAt); err != nil {
            return nil, err
        }
        if alt.Valid {
            a := alt.String
            img.AltText = &a
        }
        images = append(images, img)
    }
    return images, rows.Err()
}

// CreateBatch inserts metadata rows for successfully saved files in a single
// statement, mirroring the bulk style of the rest of the layer.  An empty
// batch is a no-op.
func (r *ImageRepo) CreateBatch(ctx context.Context, carID uint64, urls []string, altTexts []*string) error {
    if len(urls) == 0 {
        return nil
    }
    now := time.Now().UTC()
    query := "INSERT INTO car_images (car_id, url, alt_text, uploaded_at) VALUES "
    args := make([]any, 0, len(urls)*4)
    for i, u := range urls {
        if i > 0 {
            query += ","
        }
        query += "(?,?,?,?)"
        var alt *string
        if i < len(altTexts) {
            alt = altTexts[i]
        }
        args = append(args, carID, u, alt, now)
    }
    _, err := r.DB.ExecContext(ctx, query, args...)
    return err
}
