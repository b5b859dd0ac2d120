package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// FormStep names one page of the multi-step quote form.
type FormStep string

const (
	StepMaterial   FormStep = "material"
	StepDimensions FormStep = "dimensions"
	StepCoating    FormStep = "coating"
	StepColor      FormStep = "color"
	StepQuantity   FormStep = "quantity"
	StepAddons     FormStep = "addons"
	StepPromo      FormStep = "promo"
	StepSchedule   FormStep = "schedule"
	StepContact    FormStep = "contact"
)

// FormSteps is the order the form presents its pages in.
var FormSteps = []FormStep{
	StepMaterial, StepDimensions, StepCoating, StepColor, StepQuantity,
	StepAddons, StepPromo, StepSchedule, StepContact,
}

// ErrInvalidStep is returned when a step update fails validation.
var ErrInvalidStep = errors.New("invalid form step")

// StepError describes why a step update was rejected.
type StepError struct {
	Step    FormStep
	Field   string
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s.%s %s", ErrInvalidStep, e.Step, e.Field, e.Message)
}

func (e *StepError) Is(target error) bool { return target == ErrInvalidStep }

// QuoteDraft is a partially completed quote request. Drafts are values:
// Reduce never modifies the draft it is given.
type QuoteDraft struct {
	Request   model.QuoteRequest `json:"request"`
	Completed []FormStep         `json:"completed"`
}

// StepUpdate is a typed change produced by one page of the form.
type StepUpdate interface {
	Step() FormStep
	apply(*model.QuoteRequest) error
}

// Reduce validates update and returns a new draft with it applied.
func Reduce(d QuoteDraft, update StepUpdate) (QuoteDraft, error) {
	if update == nil {
		return d, &StepError{Field: "update", Message: "is required"}
	}
	next := d.clone()
	if err := update.apply(&next.Request); err != nil {
		return d, err
	}
	if !slices.Contains(next.Completed, update.Step()) {
		next.Completed = append(next.Completed, update.Step())
	}
	return next, nil
}

// QuoteRequest returns the request once every required selection is made.
func (d QuoteDraft) QuoteRequest() (model.QuoteRequest, error) {
	if missing := d.Request.Missing(); len(missing) > 0 {
		return model.QuoteRequest{}, &IncompleteQuoteError{Missing: missing}
	}
	return d.clone().Request, nil
}

// NextStep is the first form page not yet completed, or "" when done.
func (d QuoteDraft) NextStep() FormStep {
	for _, s := range FormSteps {
		if !slices.Contains(d.Completed, s) {
			return s
		}
	}
	return ""
}

func (d QuoteDraft) clone() QuoteDraft {
	out := d
	out.Completed = slices.Clone(d.Completed)
	out.Request.AddonIDs = slices.Clone(d.Request.AddonIDs)
	if d.Request.EstimatedDate != nil {
		t := *d.Request.EstimatedDate
		out.Request.EstimatedDate = &t
	}
	return out
}

// MaterialStep selects the substrate.
type MaterialStep struct {
	MaterialID string `json:"material"`
}

func (MaterialStep) Step() FormStep { return StepMaterial }

func (s MaterialStep) apply(r *model.QuoteRequest) error {
	id := strings.TrimSpace(s.MaterialID)
	if id == "" {
		return &StepError{Step: StepMaterial, Field: "material", Message: "is required"}
	}
	r.MaterialID = id
	return nil
}

// DimensionsStep records the part size. Unit defaults to inches.
type DimensionsStep struct {
	Length decimal.Decimal     `json:"length"`
	Width  decimal.Decimal     `json:"width"`
	Height decimal.Decimal     `json:"height"`
	Unit   model.DimensionUnit `json:"unit"`
}

func (DimensionsStep) Step() FormStep { return StepDimensions }

func (s DimensionsStep) apply(r *model.QuoteRequest) error {
	d := model.Dimensions{Length: s.Length, Width: s.Width, Height: s.Height, Unit: s.Unit}
	if field, err := d.Check(); err != nil {
		return &StepError{Step: StepDimensions, Field: field, Message: err.Error()}
	}
	if d.Unit == "" {
		d.Unit = model.UnitInches
	}
	r.Dimensions = d
	return nil
}

// CoatingStep selects coating grade and finish together.
type CoatingStep struct {
	TypeID   string `json:"type"`
	FinishID string `json:"finish"`
}

func (CoatingStep) Step() FormStep { return StepCoating }

func (s CoatingStep) apply(r *model.QuoteRequest) error {
	typeID, finishID := strings.TrimSpace(s.TypeID), strings.TrimSpace(s.FinishID)
	if typeID == "" {
		return &StepError{Step: StepCoating, Field: "type", Message: "is required"}
	}
	if finishID == "" {
		return &StepError{Step: StepCoating, Field: "finish", Message: "is required"}
	}
	r.Coating = model.CoatingSelection{TypeID: typeID, FinishID: finishID}
	return nil
}

// ColorStep selects the color family and optional custom color text.
type ColorStep struct {
	TypeID      string `json:"type"`
	CustomColor string `json:"custom_color"`
}

func (ColorStep) Step() FormStep { return StepColor }

func (s ColorStep) apply(r *model.QuoteRequest) error {
	typeID := strings.TrimSpace(s.TypeID)
	if typeID == "" {
		return &StepError{Step: StepColor, Field: "type", Message: "is required"}
	}
	r.Color = model.ColorSelection{TypeID: typeID, CustomColor: strings.TrimSpace(s.CustomColor)}
	return nil
}

// QuantityStep sets the number of parts.
type QuantityStep struct {
	Quantity int `json:"quantity"`
}

func (QuantityStep) Step() FormStep { return StepQuantity }

func (s QuantityStep) apply(r *model.QuoteRequest) error {
	if s.Quantity < 1 {
		return &StepError{Step: StepQuantity, Field: "quantity", Message: "must be at least 1"}
	}
	r.Quantity = s.Quantity
	return nil
}

// AddonsStep replaces the add-on selection.
type AddonsStep struct {
	AddonIDs []string `json:"addons"`
}

func (AddonsStep) Step() FormStep { return StepAddons }

func (s AddonsStep) apply(r *model.QuoteRequest) error {
	r.AddonIDs = model.QuoteRequest{AddonIDs: s.AddonIDs}.SortedAddons()
	return nil
}

// PromoStep sets or clears the promo code.
type PromoStep struct {
	Code string `json:"promo_code"`
}

func (PromoStep) Step() FormStep { return StepPromo }

func (s PromoStep) apply(r *model.QuoteRequest) error {
	r.PromoCode = strings.TrimSpace(s.Code)
	return nil
}

// ScheduleStep records when the customer needs the parts.
type ScheduleStep struct {
	EstimatedDate *time.Time `json:"estimated_date"`
	RushOrder     bool       `json:"rush_order"`
}

func (ScheduleStep) Step() FormStep { return StepSchedule }

func (s ScheduleStep) apply(r *model.QuoteRequest) error {
	r.EstimatedDate = nil
	if s.EstimatedDate != nil {
		t := *s.EstimatedDate
		r.EstimatedDate = &t
	}
	r.RushOrder = s.RushOrder
	return nil
}

// ContactStep records who to send the quote to.
type ContactStep struct {
	Contact model.ContactInfo `json:"contact"`
}

func (ContactStep) Step() FormStep { return StepContact }

func (s ContactStep) apply(r *model.QuoteRequest) error {
	c := s.Contact
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return &StepError{Step: StepContact, Field: "name", Message: "is required"}
	}
	if c.Email == "" && strings.TrimSpace(c.Phone) == "" {
		return &StepError{Step: StepContact, Field: "email", Message: "or phone is required"}
	}
	r.Contact = c
	return nil
}

var stepDecoders = map[FormStep]func([]byte) (StepUpdate, error){
	StepMaterial:   decodeInto[MaterialStep],
	StepDimensions: decodeInto[DimensionsStep],
	StepCoating:    decodeInto[CoatingStep],
	StepColor:      decodeInto[ColorStep],
	StepQuantity:   decodeInto[QuantityStep],
	StepAddons:     decodeInto[AddonsStep],
	StepPromo:      decodeInto[PromoStep],
	StepSchedule:   decodeInto[ScheduleStep],
	StepContact:    decodeInto[ContactStep],
}

// DecodeStepUpdate decodes the JSON payload for the named step. A payload
// that does not fit the step is a StepError naming the offending field.
func DecodeStepUpdate(step FormStep, payload []byte) (StepUpdate, error) {
	decode, ok := stepDecoders[step]
	if !ok {
		return nil, &StepError{Step: step, Field: "step", Message: "is not a known form step"}
	}
	update, err := decode(payload)
	if err != nil {
		return nil, decodeError(step, err)
	}
	return update, nil
}

func decodeInto[T StepUpdate](payload []byte) (StepUpdate, error) {
	var v T
	if len(payload) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeError(step FormStep, err error) *StepError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &StepError{Step: step, Field: typeErr.Field, Message: "must be " + typeErr.Type.String()}
	}
	return &StepError{Step: step, Field: "update", Message: "is not valid JSON for this step: " + err.Error()}
}
