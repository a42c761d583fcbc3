package handler

import (
    "io"
    "mime/multipart"
    "net/http"
    "os"
    "path"
    "path/filepath"
    "strconv"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/config"
    "github.com/ekaraca/carmarket/internal/repository"
)

// ImageHandler stores uploaded car photos on disk and their metadata in the
// database.
type ImageHandler struct {
    Cfg    config.Config
    Images *repository.ImageRepo
    Cars   *repository.CarRepo
}

func NewImageHandler(cfg config.Config, images *repository.ImageRepo, cars *repository.CarRepo) *ImageHandler {
    return &ImageHandler{Cfg: cfg, Images: images, Cars: cars}
}

// List serves a car's image metadata, display order.
func (h *ImageHandler) List(c echo.Context) error {
    carID, err := paramID(c, "carId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    images, err := h.Images.ListByCar(ctx, carID)
    if err != nil {
        return writeRepoErr(c, err, "list images failed")
    }
    return c.JSON(http.StatusOK, images)
}

// Upload accepts a multipart batch of image files for one car.  Files are
// written under the public image directory with generated unique names so an
// uploaded name can never collide or escape the directory.  A file that
// fails to save is logged and skipped; the rest of the batch continues, and
// only the files that made it to disk get metadata rows.
func (h *ImageHandler) Upload(c echo.Context) error {
    carIDRaw := c.FormValue("carId")
    carID, err := strconv.ParseUint(carIDRaw, 10, 64)
    if err != nil || carID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, carID)
    if err != nil {
        return writeRepoErr(c, err, "load car failed")
    }
    if !sameCaller(c, car.OwnerID) {
        return forbidden(c)
    }

    form, err := c.MultipartForm()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid multipart body"})
    }
    files := form.File["files"]
    if len(files) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files in request"})
    }
    altTexts := form.Value["altTexts"]

    if err := os.MkdirAll(h.Cfg.ImageDir, 0o755); err != nil {
        c.Logger().Errorf("create image dir: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store images failed"})
    }

    var urls []string
    var alts []*string
    saved, skipped := 0, 0
    for i, fh := range files {
        name := uuid.NewString() + filepath.Ext(fh.Filename)
        if err := saveUpload(fh, filepath.Join(h.Cfg.ImageDir, name)); err != nil {
            c.Logger().Errorf("save image %q: %v", fh.Filename, err)
            skipped++
            continue
        }
        urls = append(urls, path.Join(h.Cfg.ImageBaseURL, name))
        var alt *string
        if i < len(altTexts) && altTexts[i] != "" {
            a := altTexts[i]
            alt = &a
        }
        alts = append(alts, alt)
        saved++
    }

    if saved > 0 {
        if err := h.Images.CreateBatch(ctx, carID, urls, alts); err != nil {
            return writeRepoErr(c, err, "store image metadata failed")
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{"saved": saved, "skipped": skipped})
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
    src, err := fh.Open()
    if err != nil {
        return err
    }
    defer src.Close()

    out, err := os.Create(dst)
    if err != nil {
        return err
    }
    defer out.Close()

    _, err = io.Copy(out, src)
    return err
}
