// Package audit renders the human-readable change descriptions stored in the
// action_details column of the user/car/offer log tables.  The functions are
// pure formatters: the caller captures the entity state before and after a
// mutation and writes the returned string together with the log row itself,
// so a log entry is never visible without its description.
package audit

import (
    "fmt"
    "strings"

    "golang.org/x/text/language"
    "golang.org/x/text/message"

    "github.com/ekaraca/carmarket/internal/model"
)

// Kilometer and price figures are rendered with dot thousands separators
// ("500.000"), matching the listing culture of the original marketplace.
var numPrinter = message.NewPrinter(language.Turkish)

func groupInt(n int64) string {
    return numPrinter.Sprintf("%d", n)
}

// UserCreated describes a freshly registered user for the INSERT log row.
func UserCreated(u model.User) string {
    var b strings.Builder
    b.WriteString("User created with:\n")
    fmt.Fprintf(&b, "ID: %d\n", u.ID)
    fmt.Fprintf(&b, "Username: %s\n", u.Username)
    fmt.Fprintf(&b, "Email: %s\n", u.Email)
    fmt.Fprintf(&b, "Phone: %s\n", u.Phone)
    fmt.Fprintf(&b, "Location: %s\n", u.Location)
    return b.String()
}

// UserChanges compares a stored user against an update request and emits one
// line per changed field.  An empty string means nothing tracked differs and
// no UPDATE log row should be written.
func UserChanges(old model.User, upd model.UserUpdate) string {
    var b strings.Builder
    if old.Email != upd.Email {
        fmt.Fprintf(&b, "Mail changed from %s to %s\n", old.Email, upd.Email)
    }
    if old.Phone != upd.Phone {
        fmt.Fprintf(&b, "Phone changed from %s to %s\n", old.Phone, upd.Phone)
    }
    if old.Location != upd.Location {
        fmt.Fprintf(&b, "User location changed from %s to %s\n", old.Location, upd.Location)
    }
    if strings.TrimSpace(upd.Password) != "" {
        b.WriteString("Password changed\n")
    }
    return b.String()
}

// UserStatus describes an activation or deactivation.
func UserStatus(userID uint64, activated bool) string {
    state := "deactivated"
    if activated {
        state = "activated"
    }
    return fmt.Sprintf("User #%d has been %s\n", userID, state)
}

// CarCreated describes a new listing for the INSERT log row.
func CarCreated(c model.Car) string {
    var b strings.Builder
    fmt.Fprintf(&b, "Car created with ID: %d\n", c.ID)
    fmt.Fprintf(&b, "Brand: %s\n", c.Brand)
    fmt.Fprintf(&b, "Model: %s\n", c.Model)
    fmt.Fprintf(&b, "Year: %d\n", c.Year)
    fmt.Fprintf(&b, "KM: %s\n", groupInt(c.KM))
    fmt.Fprintf(&b, "Fuel Type: %s\n", c.FuelType)
    fmt.Fprintf(&b, "Transmission: %s\n", c.Transmission)
    fmt.Fprintf(&b, "Price: %s\n", groupInt(c.Price))
    fmt.Fprintf(&b, "Description: %s\n", c.Description)
    return b.String()
}

// CarChanges compares a stored car against an update request, field by field.
// Empty result means no tracked field differs.
func CarChanges(old model.Car, upd model.CarUpdate) string {
    var b strings.Builder
    if old.Brand != upd.Brand {
        fmt.Fprintf(&b, "Brand changed from %s to %s\n", old.Brand, upd.Brand)
    }
    if old.Model != upd.Model {
        fmt.Fprintf(&b, "Model changed from %s to %s\n", old.Model, upd.Model)
    }
    if old.KM != upd.KM {
        fmt.Fprintf(&b, "KM changed from %s to %s\n", groupInt(old.KM), groupInt(upd.KM))
    }
    if old.FuelType != upd.FuelType {
        fmt.Fprintf(&b, "Fuel type changed from %s to %s\n", old.FuelType, upd.FuelType)
    }
    if old.Transmission != upd.Transmission {
        fmt.Fprintf(&b, "Transmission changed from %s to %s\n", old.Transmission, upd.Transmission)
    }
    if old.Price != upd.Price {
        fmt.Fprintf(&b, "Price changed from %s to %s\n", groupInt(old.Price), groupInt(upd.Price))
    }
    if old.Description != upd.Description {
        switch {
        case strings.TrimSpace(old.Description) == "" && upd.Description != "":
            fmt.Fprintf(&b, "Description added: %s\n", upd.Description)
        case strings.TrimSpace(upd.Description) == "":
            fmt.Fprintf(&b, "Description removed: %s\n", old.Description)
        default:
            fmt.Fprintf(&b, "Description changed from %s to %s\n", old.Description, upd.Description)
        }
    }
    return b.String()
}

// CarStatus describes a status toggle ("sold" / "available").  Status
// toggles always log, even when the stored value did not change.
func CarStatus(carID uint64, status string) string {
    return fmt.Sprintf("Car #%d has been updated to %s\n", carID, status)
}

// OfferCreated describes a new bid for the INSERT log row.
func OfferCreated(senderID uint64, price int64, carID uint64) string {
    return fmt.Sprintf("User #%d offered %s for Car #%d.", senderID, groupInt(price), carID)
}

// OfferStatus describes an offer decision ("accepted" / "rejected").
func OfferStatus(offerID uint64, action string) string {
    return fmt.Sprintf("Offer #%d has been updated to %s\n", offerID, action)
}
