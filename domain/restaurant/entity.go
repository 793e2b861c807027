package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/marketplace-services/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no restaurant matches the id (and owner, for mutations).
	ErrNotFound = errors.New("restaurant not found")
	// ErrInvalidInput is returned when a request body fails validation.
	ErrInvalidInput = errors.New("invalid restaurant input")
)

// Restaurant represents a restaurant managed by an owner.
type Restaurant struct {
	RestaurantID string    `gorm:"column:restaurant_id;primaryKey;size:36" json:"restaurant_id"`
	OwnerID      string    `gorm:"index;not null" json:"owner_id"`
	Name         string    `gorm:"not null" json:"name"`
	City         string    `gorm:"index" json:"city"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`

	UserDetails *user.Profile `gorm:"-" json:"userDetails,omitempty"`
}

// TableName returns the table name for GORM.
func (Restaurant) TableName() string {
	return "restaurants"
}

// BeforeCreate assigns a new identifier when none was provided.
func (r *Restaurant) BeforeCreate(_ *gorm.DB) error {
	if r.RestaurantID == "" {
		r.RestaurantID = uuid.NewString()
	}
	return nil
}

// OwnerKey returns the identifier used to look up the owner's profile.
func (r *Restaurant) OwnerKey() string {
	return r.OwnerID
}

// AttachUserDetails sets the owner's profile.
func (r *Restaurant) AttachUserDetails(profile *user.Profile) {
	r.UserDetails = profile
}

// Reservation is a table booking. Reservations are removed with their restaurant.
type Reservation struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	RestaurantID string    `gorm:"index;not null;size:36" json:"restaurant_id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	PartySize    int       `json:"party_size"`
	ReservedFor  time.Time `json:"reserved_for"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (Reservation) TableName() string {
	return "reservations"
}

// ListFilter narrows a restaurant listing. City is matched case-insensitively
// and may contain SQL LIKE wildcards.
type ListFilter struct {
	City   string
	Offset int
	Limit  int
}

// CreateInput is the body accepted when creating a restaurant.
type CreateInput struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Validate checks the create body.
func (in CreateInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

// Validate rejects present-but-blank fields.
func (in UpdateInput) Validate() error {
	for name, v := range map[string]*string{
		"name":         in.Name,
		"city":         in.City,
		"address":      in.Address,
		"phone_number": in.PhoneNumber,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, name)
		}
	}
	return nil
}

// Columns returns the column values to write.
func (in UpdateInput) Columns() map[string]any {
	cols := make(map[string]any)
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.City != nil {
		cols["city"] = *in.City
	}
	if in.Address != nil {
		cols["address"] = *in.Address
	}
	if in.PhoneNumber != nil {
		cols["phone_number"] = *in.PhoneNumber
	}
	return cols
}
