package audit

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/ekaraca/carmarket/internal/model"
)

func TestGroupInt(t *testing.T) {
    assert.Equal(t, "500.000", groupInt(500000))
    assert.Equal(t, "1.250.000", groupInt(1250000))
    assert.Equal(t, "999", groupInt(999))
}

func TestCarChangesPriceOnly(t *testing.T) {
    old := model.Car{
        Brand: "Toyota", Model: "Corolla", Year: 2020, KM: 50000,
        FuelType: "gasoline", Transmission: "automatic", Price: 500000,
    }
    upd := model.CarUpdate{
        Brand: "Toyota", Model: "Corolla", KM: 50000,
        FuelType: "gasoline", Transmission: "automatic", Price: 550000,
    }

    got := CarChanges(old, upd)
    assert.Equal(t, "Price changed from 500.000 to 550.000\n", got)
    assert.NotContains(t, got, "Brand")
}

func TestCarChangesEmptyWhenIdentical(t *testing.T) {
    old := model.Car{Brand: "Honda", Model: "Civic", KM: 80000, Price: 400000}
    upd := model.CarUpdate{Brand: "Honda", Model: "Civic", KM: 80000, Price: 400000}
    assert.Empty(t, CarChanges(old, upd))
}

func TestCarChangesDescriptionTransitions(t *testing.T) {
    old := model.Car{Brand: "b", Model: "m"}
    upd := model.CarUpdate{Brand: "b", Model: "m", Description: "clean car"}
    assert.Equal(t, "Description added: clean car\n", CarChanges(old, upd))

    old.Description = "clean car"
    upd.Description = ""
    assert.Equal(t, "Description removed: clean car\n", CarChanges(old, upd))

    upd.Description = "very clean car"
    assert.Equal(t, "Description changed from clean car to very clean car\n", CarChanges(old, upd))
}

func TestUserChanges(t *testing.T) {
    old := model.User{Email: "a@x.com", Phone: "555", Location: "Ankara"}
    upd := model.UserUpdate{Email: "b@x.com", Phone: "555", Location: "Ankara", Password: "newpw"}

    got := UserChanges(old, upd)
    assert.Contains(t, got, "Mail changed from a@x.com to b@x.com\n")
    assert.Contains(t, got, "Password changed\n")
    assert.NotContains(t, got, "Phone")
    assert.NotContains(t, got, "location")
}

func TestStatusDescriptions(t *testing.T) {
    assert.Equal(t, "Car #7 has been updated to sold\n", CarStatus(7, model.CarStatusSold))
    assert.Equal(t, "Offer #3 has been updated to accepted\n", OfferStatus(3, model.OfferStatusAccepted))
    assert.Equal(t, "User #9 has been deactivated\n", UserStatus(9, false))
    assert.Equal(t, "User #2 offered 750.000 for Car #4.", OfferCreated(2, 750000, 4))
}
