package model

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// Collection names used by the document store.
const (
	CollectionAppointment  = "appointment"
	CollectionGalleryImage = "galleryimage"
	CollectionUser         = "user"
	CollectionProduct      = "product"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Appointment is a service booking request submitted by a visitor.
type Appointment struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service" validate:"required" jsonschema:"description=Requested drone service"`
	Date    string `json:"date" validate:"required" jsonschema:"description=Desired date for the flight"`
	Time    string `json:"time,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// GalleryImage is a showcase image displayed by the front-end.
type GalleryImage struct {
	URL      string `json:"url" validate:"required,url"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category,omitempty"`
}

// User is defined for schema introspection only; no endpoint persists users.
type User struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// Product is defined for schema introspection only; no endpoint persists products.
type Product struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
}

// Validate checks the struct against its validate tags.
func (a Appointment) Validate() error { return validate.Struct(a) }

// Validate checks the struct against its validate tags.
func (g GalleryImage) Validate() error { return validate.Struct(g) }

// Fields converts the entity into its storage representation.
func (a Appointment) Fields() Document { return toFields(a) }

// Fields converts the entity into its storage representation.
func (g GalleryImage) Fields() Document { return toFields(g) }

// toFields round-trips an entity through its JSON form so that storage sees
// exactly the field names the transport layer uses.
func toFields(v any) Document {
	b, err := json.Marshal(v)
	if err != nil {
		// Entities are plain structs of scalars; marshalling cannot fail.
		panic(err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		panic(err)
	}
	return doc
}

// Schemas returns the JSON Schema documents for the four entity types,
// keyed by collection name.
func Schemas() map[string]*jsonschema.Schema {
	r := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return map[string]*jsonschema.Schema{
		CollectionAppointment:  r.Reflect(&Appointment{}),
		CollectionGalleryImage: r.Reflect(&GalleryImage{}),
		CollectionUser:         r.Reflect(&User{}),
		CollectionProduct:      r.Reflect(&Product{}),
	}
}
