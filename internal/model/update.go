package model

// CarUpdate carries the editable listing fields of a car update request.
// Owner, status and listing time are not editable through this path.
type CarUpdate struct {
    Brand        string `json:"brand"`
    Model        string `json:"model"`
    KM           int64  `json:"km"`
    FuelType     string `json:"fuel_type"`
    Transmission string `json:"transmission"`
    Price        int64  `json:"price"`
    Description  string `json:"description"`
}

// UserUpdate carries the editable profile fields.  Password is optional; when
// set, OldPassword must verify against the stored hash before the change is
// applied.
type UserUpdate struct {
    Email       string `json:"email"`
    Phone       string `json:"phone"`
    Location    string `json:"location"`
    Password    string `json:"password,omitempty"`
    OldPassword string `json:"old_password,omitempty"`
}
