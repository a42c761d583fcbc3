// Package queue defines message payloads exchanged over the message broker.
package queue

// OfferAcceptedEvent is published when a seller accepts an offer and the car
// is marked sold.  It carries enough context for downstream consumers to
// log or notify without querying the primary database, including the sibling
// offers that were auto-rejected by the acceptance.
type OfferAcceptedEvent struct {
    OfferID         uint64   `json:"offer_id"`
    CarID           uint64   `json:"car_id"`
    SenderID        uint64   `json:"sender_id"`
    ReceiverID      uint64   `json:"receiver_id"`
    Price           int64    `json:"price"`
    RejectedOffers  []uint64 `json:"rejected_offers"`
    RejectedSenders []uint64 `json:"rejected_senders"`
    AcceptedAt      string   `json:"accepted_at"`
}
