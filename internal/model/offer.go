package model

import "time"

// Offer status values.  Offers start pending and transition exactly once to
// accepted or rejected; both are terminal.
const (
    OfferStatusPending  = "pending"
    OfferStatusAccepted = "accepted"
    OfferStatusRejected = "rejected"
)

// Offer mirrors the `offers` table: a bid by the sender to the receiver
// (the car's owner) to buy the car at the proposed price.
type Offer struct {
    ID         uint64    `json:"id"`          // offers.id
    CarID      uint64    `json:"car_id"`      // offers.car_id
    SenderID   uint64    `json:"sender_id"`   // offers.sender_id
    ReceiverID uint64    `json:"receiver_id"` // offers.receiver_id
    Price      int64     `json:"price"`       // offers.price
    Status     string    `json:"status"`      // offers.status
    OfferTime  time.Time `json:"offer_time"`  // offers.offer_time
}
