// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/domain/model"
)

const (
	// DefaultPageLimit is used when a list request does not set a limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps list requests.
	MaxPageLimit = 100
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// DimensionsInput is the size of one part. Axes may be omitted; present
// ones are bounded by model.MaxDimension.
type DimensionsInput struct {
	Length decimal.Decimal `json:"length" swaggertype:"number" minimum:"0" maximum:"10000" example:"12"`
	Width  decimal.Decimal `json:"width" swaggertype:"number" minimum:"0" maximum:"10000" example:"8"`
	Height decimal.Decimal `json:"height" swaggertype:"number" minimum:"0" maximum:"10000" example:"2"`
	Unit   string          `json:"unit" validate:"omitempty,oneof=inches cm" example:"inches"`
}

// CoatingInput is the coating grade and finish.
type CoatingInput struct {
	Type   string `json:"type" validate:"max=64" example:"standard"`
	Finish string `json:"finish" validate:"max=64" example:"glossy"`
}

// ColorInput is the color family, plus free text for custom matches.
type ColorInput struct {
	Type        string `json:"type" validate:"max=64" example:"standard"`
	CustomColor string `json:"custom_color" validate:"max=120" example:"RAL 5015"`
}

// ContactInput is the optional contact block of a quote.
type ContactInput struct {
	Name    string `json:"name" validate:"max=120" example:"Ana Souza"`
	Email   string `json:"email" validate:"omitempty,email,max=254" example:"ana@example.com"`
	Phone   string `json:"phone" validate:"max=40" example:"+31 20 123 4567"`
	Company string `json:"company" validate:"max=120" example:"Acme Gates"`
	Notes   string `json:"notes" validate:"max=2000"`
}

// QuoteInput is the JSON body for estimating or submitting a quote.
// Required selections are not enforced here; the pricing engine reports
// what is missing.
//
// @Description Quote selections from the multi-step form
type QuoteInput struct {
	Material      string          `json:"material" validate:"max=64" example:"steel"`
	Dimensions    DimensionsInput `json:"dimensions"`
	Coating       CoatingInput    `json:"coating"`
	Color         ColorInput      `json:"color"`
	Quantity      int             `json:"quantity" validate:"gte=0,lte=100000" example:"10"`
	Addons        []string        `json:"addons" validate:"max=20,dive,max=64" example:"extraCoating,specialPrimer"`
	PromoCode     string          `json:"promo_code" validate:"max=32" example:"HOLIDAY"`
	EstimatedDate *time.Time      `json:"estimated_date,omitempty" example:"2025-03-01T00:00:00Z"`
	RushOrder     bool            `json:"rush_order"`
	Contact       ContactInput    `json:"contact"`
} // @name QuoteInput

// ToModel converts the input to the request the pricing engine consumes.
func (in QuoteInput) ToModel() model.QuoteRequest {
	unit := model.DimensionUnit(in.Dimensions.Unit)
	if unit == "" {
		unit = model.UnitInches
	}
	return model.QuoteRequest{
		MaterialID: strings.TrimSpace(in.Material),
		Dimensions: model.Dimensions{
			Length: in.Dimensions.Length,
			Width:  in.Dimensions.Width,
			Height: in.Dimensions.Height,
			Unit:   unit,
		},
		Coating:       model.CoatingSelection{TypeID: strings.TrimSpace(in.Coating.Type), FinishID: strings.TrimSpace(in.Coating.Finish)},
		Color:         model.ColorSelection{TypeID: strings.TrimSpace(in.Color.Type), CustomColor: strings.TrimSpace(in.Color.CustomColor)},
		Quantity:      in.Quantity,
		AddonIDs:      in.Addons,
		PromoCode:     strings.TrimSpace(in.PromoCode),
		EstimatedDate: in.EstimatedDate,
		RushOrder:     in.RushOrder,
		Contact: model.ContactInfo{
			Name:    strings.TrimSpace(in.Contact.Name),
			Email:   strings.TrimSpace(in.Contact.Email),
			Phone:   strings.TrimSpace(in.Contact.Phone),
			Company: strings.TrimSpace(in.Contact.Company),
			Notes:   strings.TrimSpace(in.Contact.Notes),
		},
	}
}

// NewQuoteInput is the inverse of ToModel.
func NewQuoteInput(r model.QuoteRequest) QuoteInput {
	return QuoteInput{
		Material: r.MaterialID,
		Dimensions: DimensionsInput{
			Length: r.Dimensions.Length,
			Width:  r.Dimensions.Width,
			Height: r.Dimensions.Height,
			Unit:   string(r.Dimensions.Unit),
		},
		Coating:       CoatingInput{Type: r.Coating.TypeID, Finish: r.Coating.FinishID},
		Color:         ColorInput{Type: r.Color.TypeID, CustomColor: r.Color.CustomColor},
		Quantity:      r.Quantity,
		Addons:        r.AddonIDs,
		PromoCode:     r.PromoCode,
		EstimatedDate: r.EstimatedDate,
		RushOrder:     r.RushOrder,
		Contact: ContactInput{
			Name:    r.Contact.Name,
			Email:   r.Contact.Email,
			Phone:   r.Contact.Phone,
			Company: r.Contact.Company,
			Notes:   r.Contact.Notes,
		},
	}
}

// DraftRequest applies one form step to a draft. Draft is whatever the
// previous call returned, or empty to start a new quote.
//
// @Description One step of the multi-step quote form
type DraftRequest struct {
	Draft  DraftState      `json:"draft"`
	Step   string          `json:"step" validate:"required,oneof=material dimensions coating color quantity addons promo schedule contact" example:"material"`
	Update json.RawMessage `json:"update" validate:"required" swaggertype:"object"`
} // @name DraftRequest

// DraftState is the client-held state of the quote form. It comes back
// from the client, so it is validated with the same rules as QuoteInput.
type DraftState struct {
	Request   QuoteInput `json:"request"`
	Completed []string   `json:"completed" validate:"max=9,dive,oneof=material dimensions coating color quantity addons promo schedule contact"`
}

// StatusUpdateRequest moves a submitted quote through review.
//
// @Description New status for a submitted quote
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected" example:"accepted"`
} // @name StatusUpdateRequest

// ContactRequestInput is the JSON body of the contact form.
//
// @Description Contact form submission
type ContactRequestInput struct {
	Name           string `json:"name" validate:"required,max=120" example:"Ana Souza"`
	Email          string `json:"email" validate:"required,email,max=254" example:"ana@example.com"`
	Phone          string `json:"phone" validate:"max=40" example:"+31 20 123 4567"`
	Message        string `json:"message" validate:"required,min=10,max=5000" example:"Can you coat 40 garden gates before spring?"`
	QuoteReference string `json:"quote_reference" validate:"omitempty,quote_ref" example:"QT-LZ3K9M2A-7QX"`
} // @name ContactRequestInput

// ToModel converts the input to a contact request.
func (in ContactRequestInput) ToModel() model.ContactRequest {
	return model.ContactRequest{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Message:        in.Message,
		QuoteReference: in.QuoteReference,
	}
}

// PageQuery holds limit/skip query parameters.
type PageQuery struct {
	Limit int `form:"limit" validate:"gte=0,lte=100"`
	Skip  int `form:"skip" validate:"gte=0"`
}

// Normalized applies the default limit.
func (q PageQuery) Normalized() PageQuery {
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	return q
}

// LogQuery holds the query parameters of the log search.
type LogQuery struct {
	PageQuery
	RequestID string     `form:"request_id" validate:"max=64"`
	Level     string     `form:"level" validate:"omitempty,oneof=info warn error"`
	Action    string     `form:"action" validate:"max=64"`
	UserID    string     `form:"user_id" validate:"omitempty,len=24,hexadecimal"`
	Since     *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until     *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ToFilter converts the query to a repository filter.
func (q LogQuery) ToFilter() model.LogFilter {
	return model.LogFilter{
		RequestID: q.RequestID,
		Level:     q.Level,
		Action:    q.Action,
		UserID:    q.UserID,
		Since:     q.Since,
		Until:     q.Until,
		Limit:     q.Limit,
		Skip:      q.Skip,
	}
}
