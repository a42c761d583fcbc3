package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/ekaraca/carmarket/internal/audit"
    "github.com/ekaraca/carmarket/internal/model"
)

// CarRepo persists car listings and their audit rows.
type CarRepo struct{ DB *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{DB: db} }

const carColumns = "id, owner_id, brand, model, year, km, fuel_type, transmission, price, description, status, listed_at"

// carListSelect is the browse projection: listing fields plus owner display
// info and the first image by id as the thumbnail.
const carListSelect = `SELECT c.id, c.brand, c.model, c.year, c.km, c.price, c.status, c.listed_at,
       c.owner_id, u.username, u.location,
       (SELECT i.url FROM car_images i WHERE i.car_id = c.id ORDER BY i.id LIMIT 1)
FROM cars c
JOIN users u ON u.id = c.owner_id`

// CarListItem is one row of the marketplace browse views.
type CarListItem struct {
    ID            uint64    `json:"id"`
    Brand         string    `json:"brand"`
    Model         string    `json:"model"`
    Year          int       `json:"year"`
    KM            int64     `json:"km"`
    Price         int64     `json:"price"`
    Status        string    `json:"status"`
    ListDate      time.Time `json:"list_date"`
    OwnerID       uint64    `json:"owner_id"`
    OwnerUsername string    `json:"owner_username"`
    OwnerLocation string    `json:"owner_location"`
    ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
}

// CarDetails is the single-car view joined with owner display info.
type CarDetails struct {
    model.Car
    OwnerUsername string `json:"owner_username"`
    OwnerLocation string `json:"owner_location"`
}

// ListParams describes one page of the available-cars browse query.
// Brand filters by exact match; the empty string and the sentinel "all"
// (any case) disable the filter.  SortBy accepts price, km and year, any
// other value falls back to listing date; every sort carries a descending
// listing-date tiebreak for stable pages.
type ListParams struct {
    Page     int
    PageSize int
    Brand    string
    SortBy   string
    SortDir  string
}

func (p ListParams) orderClause() string {
    dir := "ASC"
    if strings.EqualFold(p.SortDir, "desc") {
        dir = "DESC"
    }
    switch strings.ToLower(p.SortBy) {
    case "price":
        return "c.price " + dir + ", c.listed_at DESC"
    case "km":
        return "c.km " + dir + ", c.listed_at DESC"
    case "year":
        return "c.year " + dir + ", c.listed_at DESC"
    default:
        return "c.listed_at DESC"
    }
}

func (p ListParams) brandFilter() (string, bool) {
    b := strings.TrimSpace(p.Brand)
    if b == "" || strings.EqualFold(b, "all") {
        return "", false
    }
    return b, true
}

// Create inserts a new listing with status available and appends the
// creation audit entry in the same transaction.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
    c.Status = model.CarStatusAvailable
    c.ListedAt = time.Now().UTC()

    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    res, err := tx.ExecContext(ctx,
        "INSERT INTO cars (owner_id, brand, model, year, km, fuel_type, transmission, price, description, status, listed_at) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
        c.OwnerID, c.Brand, c.Model, c.Year, c.KM, c.FuelType, c.Transmission, c.Price, c.Description, c.Status, c.ListedAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)

    if err := insertAuditTx(ctx, tx, carLogTable, carLogSubject, c.ID,
        model.AuditActionInsert, audit.CarCreated(*c), c.ListedAt); err != nil {
        return err
    }
    return tx.Commit()
}

func scanCar(row *sql.Row) (model.Car, error) {
    var c model.Car
    var desc sql.NullString
    err := row.Scan(&c.ID, &c.OwnerID, &c.Brand, &c.Model, &c.Year, &c.KM,
        &c.FuelType, &c.Transmission, &c.Price, &desc, &c.Status, &c.ListedAt)
    if err == sql.ErrNoRows {
        return c, ErrNotFound
    }
    c.Description = desc.String
    return c, err
}

// GetByID fetches a single car row.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
    return scanCar(r.DB.QueryRowContext(ctx,
        "SELECT "+carColumns+" FROM cars WHERE id=? LIMIT 1", id))
}

// Details fetches a car joined with its owner's display name and location.
func (r *CarRepo) Details(ctx context.Context, id uint64) (CarDetails, error) {
    var d CarDetails
    var desc sql.NullString
    err := r.DB.QueryRowContext(ctx,
        `SELECT c.id, c.owner_id, c.brand, c.model, c.year, c.km, c.fuel_type, c.transmission,
                c.price, c.description, c.status, c.listed_at, u.username, u.location
         FROM cars c JOIN users u ON u.id = c.owner_id WHERE c.id=? LIMIT 1`, id).
        Scan(&d.ID, &d.OwnerID, &d.Brand, &d.Model, &d.Year, &d.KM, &d.FuelType,
            &d.Transmission, &d.Price, &desc, &d.Status, &d.ListedAt,
            &d.OwnerUsername, &d.OwnerLocation)
    if err == sql.ErrNoRows {
        return d, ErrNotFound
    }
    d.Description = desc.String
    return d, err
}

func collectListItems(rows *sql.Rows) ([]CarListItem, error) {
    defer rows.Close()
    items := make([]CarListItem, 0)
    for rows.Next() {
        var it CarListItem
        var thumb sql.NullString
        if err := rows.Scan(&it.ID, &it.Brand, &it.Model, &it.Year, &it.KM, &it.Price,
            &it.Status, &it.ListDate, &it.OwnerID, &it.OwnerUsername, &it.OwnerLocation, &thumb); err != nil {
            return nil, err
        }
        if thumb.Valid {
            u := thumb.String
            it.ThumbnailURL = &u
        }
        items = append(items, it)
    }
    return items, rows.Err()
}

// ListAll returns every car, id ascending.
func (r *CarRepo) ListAll(ctx context.Context) ([]CarListItem, error) {
    rows, err := r.DB.QueryContext(ctx, carListSelect+" ORDER BY c.id")
    if err != nil {
        return nil, err
    }
    return collectListItems(rows)
}

// ListByOwner returns a user's own listings, id ascending.
func (r *CarRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]CarListItem, error) {
    rows, err := r.DB.QueryContext(ctx, carListSelect+" WHERE c.owner_id=? ORDER BY c.id", ownerID)
    if err != nil {
        return nil, err
    }
    return collectListItems(rows)
}

// ListFavorites returns the still-available cars a user has favorited.
func (r *CarRepo) ListFavorites(ctx context.Context, userID uint64) ([]CarListItem, error) {
    rows, err := r.DB.QueryContext(ctx,
        carListSelect+` JOIN favorites f ON f.car_id = c.id
WHERE f.user_id=? AND c.status=? ORDER BY c.id`, userID, model.CarStatusAvailable)
    if err != nil {
        return nil, err
    }
    return collectListItems(rows)
}

// ListAvailable returns one page of available cars plus the total match
// count for the same filter.  Page and size are clamped to 1 at minimum.
func (r *CarRepo) ListAvailable(ctx context.Context, p ListParams) ([]CarListItem, int, error) {
    if p.Page < 1 {
        p.Page = 1
    }
    if p.PageSize < 1 {
        p.PageSize = 1
    }

    where := " WHERE c.status=?"
    args := []any{model.CarStatusAvailable}
    if brand, ok := p.brandFilter(); ok {
        where += " AND c.brand=?"
        args = append(args, brand)
    }

    var total int
    if err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM cars c"+where, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    query := carListSelect + where + " ORDER BY " + p.orderClause() + " LIMIT ? OFFSET ?"
    args = append(args, p.PageSize, (p.Page-1)*p.PageSize)
    rows, err := r.DB.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, 0, err
    }
    items, err := collectListItems(rows)
    if err != nil {
        return nil, 0, err
    }
    return items, total, nil
}

// Update applies an edit to the mutable listing fields.  The diff against
// the stored row drives the audit entry; an edit that changes nothing
// tracked writes no log row.
func (r *CarRepo) Update(ctx context.Context, id uint64, upd model.CarUpdate) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    old, err := scanCar(tx.QueryRowContext(ctx,
        "SELECT "+carColumns+" FROM cars WHERE id=? FOR UPDATE", id))
    if err != nil {
        return err
    }

    details := audit.CarChanges(old, upd)

    if _, err := tx.ExecContext(ctx,
        "UPDATE cars SET brand=?, model=?, km=?, fuel_type=?, transmission=?, price=?, description=? WHERE id=?",
        upd.Brand, upd.Model, upd.KM, upd.FuelType, upd.Transmission, upd.Price, upd.Description, id); err != nil {
        return err
    }

    if details != "" {
        if err := insertAuditTx(ctx, tx, carLogTable, carLogSubject, id,
            model.AuditActionUpdate, details, time.Now().UTC()); err != nil {
            return err
        }
    }
    return tx.Commit()
}

// setCarStatusTx flips a car's status within the caller's transaction and
// appends the status audit entry.  The write is idempotent at the data level
// but always logs; the offer accept flow shares it.
func setCarStatusTx(ctx context.Context, tx *sql.Tx, carID uint64, status string, at time.Time) error {
    var found uint64
    err := tx.QueryRowContext(ctx, "SELECT id FROM cars WHERE id=? FOR UPDATE", carID).Scan(&found)
    if err == sql.ErrNoRows {
        return ErrNotFound
    }
    if err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "UPDATE cars SET status=? WHERE id=?", status, carID); err != nil {
        return err
    }
    return insertAuditTx(ctx, tx, carLogTable, carLogSubject, carID,
        model.AuditActionUpdate, audit.CarStatus(carID, status), at)
}

// SetStatus marks a car sold or available.
func (r *CarRepo) SetStatus(ctx context.Context, carID uint64, status string) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()

    if err := setCarStatusTx(ctx, tx, carID, status, time.Now().UTC()); err != nil {
        return err
    }
    return tx.Commit()
}
