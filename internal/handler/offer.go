package handler

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ekaraca/carmarket/internal/logger"
    "github.com/ekaraca/carmarket/internal/model"
    "github.com/ekaraca/carmarket/internal/queue"
    queue_publisher "github.com/ekaraca/carmarket/internal/service"
    "github.com/ekaraca/carmarket/internal/repository"
)

// OfferHandler runs the purchase-offer workflow.
type OfferHandler struct {
    Offers        *repository.OfferRepo
    Cars          *repository.CarRepo
    Notifications *repository.NotificationRepo
    Audit         *logger.FileLogger
}

func NewOfferHandler(offers *repository.OfferRepo, cars *repository.CarRepo, notifications *repository.NotificationRepo, audit *logger.FileLogger) *OfferHandler {
    return &OfferHandler{Offers: offers, Cars: cars, Notifications: notifications, Audit: audit}
}

type offerCreateReq struct {
    CarID uint64 `json:"car_id"`
    Price int64  `json:"price"`
}

// Create places a pending offer from the caller to the car's owner.  The
// receiver is derived server-side from the car row, so a client cannot
// address an offer to an arbitrary user.
func (h *OfferHandler) Create(c echo.Context) error {
    var req offerCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.CarID == 0 || req.Price <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id and price are required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, req.CarID)
    if err != nil {
        return writeRepoErr(c, err, "load car failed")
    }
    if car.Status != model.CarStatusAvailable {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "car is not available"})
    }
    sender := currentUserID(c)
    if sender == car.OwnerID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot offer on your own car"})
    }

    o := model.Offer{
        CarID:      req.CarID,
        SenderID:   sender,
        ReceiverID: car.OwnerID,
        Price:      req.Price,
    }
    if err := h.Offers.Create(ctx, &o); err != nil {
        return writeRepoErr(c, err, "create offer failed")
    }

    // Best effort: the offer stands even if the seller's notification fails.
    text := fmt.Sprintf("You received a new offer of %d for your %s %s.", o.Price, car.Brand, car.Model)
    if err := h.Notifications.Create(ctx, car.OwnerID, text); err != nil {
        c.Logger().Errorf("notify new offer: %v", err)
    }
    return c.JSON(http.StatusCreated, o)
}

// Accept decides a pending offer in the caller's favor as the receiver.  The
// repository commits the car sale, the sibling rejections and the audit
// trail atomically; the sale event goes to the broker after commit, best
// effort.
func (h *OfferHandler) Accept(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offer id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if ok, err := h.requireReceiver(c, ctx, id); !ok {
        return err
    }

    res, err := h.Offers.Accept(ctx, id)
    if err != nil {
        return writeRepoErr(c, err, "accept offer failed")
    }

    h.Audit.Logf("Offer #%d accepted; car #%d sold for %d; %d competing offers rejected",
        res.Offer.ID, res.Offer.CarID, res.Offer.Price, len(res.RejectedOffers))

    event := queue.OfferAcceptedEvent{
        OfferID:         res.Offer.ID,
        CarID:           res.Offer.CarID,
        SenderID:        res.Offer.SenderID,
        ReceiverID:      res.Offer.ReceiverID,
        Price:           res.Offer.Price,
        RejectedOffers:  res.RejectedOffers,
        RejectedSenders: res.RejectedSenders,
        AcceptedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    // The sale is already committed; a broker outage must not fail it.
    _ = queue_publisher.PublishOfferAccepted(context.Background(), event)

    return c.JSON(http.StatusOK, res.Offer)
}

// Reject turns down a pending offer; no cascade.
func (h *OfferHandler) Reject(c echo.Context) error {
    id, err := paramID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offer id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if ok, err := h.requireReceiver(c, ctx, id); !ok {
        return err
    }

    if err := h.Offers.Reject(ctx, id); err != nil {
        return writeRepoErr(c, err, "reject offer failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "offer rejected"})
}

// requireReceiver checks that the caller is the receiver of the offer (or an
// admin).  The response is already written when ok is false.  The pending
// check itself stays in the repository; only identity is decided here.
func (h *OfferHandler) requireReceiver(c echo.Context, ctx context.Context, offerID uint64) (bool, error) {
    o, err := h.Offers.GetByID(ctx, offerID)
    if err != nil {
        return false, writeRepoErr(c, err, "load offer failed")
    }
    if !sameCaller(c, o.ReceiverID) {
        return false, forbidden(c)
    }
    return true, nil
}

// Sent lists the caller's outgoing offers.
func (h *OfferHandler) Sent(c echo.Context) error {
    return h.listFor(c, h.Offers.ListSent)
}

// Received lists the caller's incoming offers.
func (h *OfferHandler) Received(c echo.Context) error {
    return h.listFor(c, h.Offers.ListReceived)
}

func (h *OfferHandler) listFor(c echo.Context, list func(context.Context, uint64) ([]model.Offer, error)) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    offers, err := list(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "list offers failed")
    }
    return c.JSON(http.StatusOK, offers)
}

// PendingReceived counts the caller's undecided incoming offers, for the
// notification badge.
func (h *OfferHandler) PendingReceived(c echo.Context) error {
    userID, err := paramID(c, "userId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if !sameCaller(c, userID) {
        return forbidden(c)
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    n, err := h.Offers.CountPendingReceived(ctx, userID)
    if err != nil {
        return writeRepoErr(c, err, "count offers failed")
    }
    return c.JSON(http.StatusOK, echo.Map{"count": n})
}
