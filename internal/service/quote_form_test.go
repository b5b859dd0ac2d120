package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/domain/model"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		update  StepUpdate
		wantErr string
		verify  func(*testing.T, model.QuoteRequest)
	}{
		{
			name:   "material",
			update: MaterialStep{MaterialID: " steel "},
			verify: func(t *testing.T, r model.QuoteRequest) { assert.Equal(t, "steel", r.MaterialID) },
		},
		{
			name:    "material required",
			update:  MaterialStep{},
			wantErr: "material.material is required",
		},
		{
			name:   "dimensions default to inches",
			update: DimensionsStep{Length: dec("4"), Width: dec("2"), Height: dec("1")},
			verify: func(t *testing.T, r model.QuoteRequest) {
				assert.Equal(t, model.UnitInches, r.Dimensions.Unit)
				assert.True(t, r.Dimensions.Length.Equal(dec("4")))
			},
		},
		{
			name:    "dimensions reject unknown unit",
			update:  DimensionsStep{Length: dec("4"), Unit: "feet"},
			wantErr: "dimensions.unit",
		},
		{
			name:    "dimensions reject negative",
			update:  DimensionsStep{Width: dec("-1")},
			wantErr: "dimensions.width must not be negative",
		},
		{
			name:    "dimensions reject huge exponent",
			update:  DimensionsStep{Length: dec("1e50000000"), Width: dec("2"), Height: dec("1")},
			wantErr: "dimensions.length must be at most 10000",
		},
		{
			name:    "dimensions reject axis past the limit",
			update:  DimensionsStep{Height: dec("10000.01")},
			wantErr: "dimensions.height must be at most 10000",
		},
		{
			name:    "dimensions reject tiny exponent",
			update:  DimensionsStep{Width: dec("1e-50000000")},
			wantErr: "dimensions.width must have at most 4 decimal places",
		},
		{
			name:   "dimensions accept the limit",
			update: DimensionsStep{Length: dec("1e4"), Width: dec("10000"), Height: dec("0.0001"), Unit: model.UnitCentimeters},
			verify: func(t *testing.T, r model.QuoteRequest) {
				assert.Equal(t, model.UnitCentimeters, r.Dimensions.Unit)
			},
		},
		{
			name:   "coating",
			update: CoatingStep{TypeID: "premium", FinishID: "matte"},
			verify: func(t *testing.T, r model.QuoteRequest) {
				assert.Equal(t, model.CoatingSelection{TypeID: "premium", FinishID: "matte"}, r.Coating)
			},
		},
		{
			name:    "coating needs a finish",
			update:  CoatingStep{TypeID: "premium"},
			wantErr: "coating.finish is required",
		},
		{
			name:   "color with custom text",
			update: ColorStep{TypeID: "custom", CustomColor: "  RAL 6005 "},
			verify: func(t *testing.T, r model.QuoteRequest) { assert.Equal(t, "RAL 6005", r.Color.CustomColor) },
		},
		{
			name:    "quantity must be positive",
			update:  QuantityStep{Quantity: 0},
			wantErr: "quantity.quantity must be at least 1",
		},
		{
			name:   "addons are deduplicated and sorted",
			update: AddonsStep{AddonIDs: []string{"uvProtection", "extraCoating", "uvProtection"}},
			verify: func(t *testing.T, r model.QuoteRequest) {
				assert.Equal(t, []string{"extraCoating", "uvProtection"}, r.AddonIDs)
			},
		},
		{
			name:   "promo is trimmed",
			update: PromoStep{Code: " holiday "},
			verify: func(t *testing.T, r model.QuoteRequest) { assert.Equal(t, "holiday", r.PromoCode) },
		},
		{
			name:   "schedule",
			update: ScheduleStep{EstimatedDate: &fixedNow, RushOrder: true},
			verify: func(t *testing.T, r model.QuoteRequest) {
				require.NotNil(t, r.EstimatedDate)
				assert.True(t, r.EstimatedDate.Equal(fixedNow))
				assert.True(t, r.RushOrder)
			},
		},
		{
			name:    "contact needs a way to reply",
			update:  ContactStep{Contact: model.ContactInfo{Name: "Ada"}},
			wantErr: "contact.email or phone is required",
		},
		{
			name:    "nil update",
			update:  nil,
			wantErr: "update is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := QuoteDraft{}
			next, err := Reduce(start, tt.update)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrInvalidStep)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, next.Completed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []FormStep{tt.update.Step()}, next.Completed)
			tt.verify(t, next.Request)
		})
	}
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	date := fixedNow
	start := QuoteDraft{
		Request: model.QuoteRequest{
			AddonIDs:      []string{"extraCoating"},
			EstimatedDate: &date,
		},
		Completed: []FormStep{StepAddons, StepSchedule},
	}

	next, err := Reduce(start, AddonsStep{AddonIDs: []string{"specialPrimer"}})
	require.NoError(t, err)
	next.Request.EstimatedDate = nil

	later, err := Reduce(start, MaterialStep{MaterialID: "steel"})
	require.NoError(t, err)
	later.Request.AddonIDs[0] = "mutated"
	*later.Request.EstimatedDate = fixedNow.Add(time.Hour)
	later.Completed[0] = StepContact

	assert.Equal(t, []string{"extraCoating"}, start.Request.AddonIDs)
	assert.True(t, start.Request.EstimatedDate.Equal(fixedNow))
	assert.Equal(t, []FormStep{StepAddons, StepSchedule}, start.Completed)
	assert.Equal(t, []string{"specialPrimer"}, next.Request.AddonIDs)
	assert.Equal(t, "", start.Request.MaterialID)
}

func TestQuoteDraft_Flow(t *testing.T) {
	calc := newTestCalculator()
	steps := []StepUpdate{
		MaterialStep{MaterialID: "steel"},
		CoatingStep{TypeID: "standard", FinishID: "glossy"},
		ColorStep{TypeID: "standard"},
	}

	draft := QuoteDraft{}
	for _, s := range steps {
		var err error
		draft, err = Reduce(draft, s)
		require.NoError(t, err)

		_, err = draft.QuoteRequest()
		assert.ErrorIs(t, err, ErrIncompleteQuote)
	}
	assert.Equal(t, StepDimensions, draft.NextStep())

	draft, err := Reduce(draft, QuantityStep{Quantity: 10})
	require.NoError(t, err)
	// re-applying a step does not duplicate it
	draft, err = Reduce(draft, QuantityStep{Quantity: 10})
	require.NoError(t, err)
	assert.Len(t, draft.Completed, 4)

	req, err := draft.QuoteRequest()
	require.NoError(t, err)

	b, err := calc.Calculate(req)
	require.NoError(t, err)
	assertMoney(t, "450", b.Total, "total")
}

func TestQuoteDraft_NextStep(t *testing.T) {
	assert.Equal(t, StepMaterial, QuoteDraft{}.NextStep())

	done := QuoteDraft{Completed: append([]FormStep(nil), FormSteps...)}
	assert.Equal(t, FormStep(""), done.NextStep())
}

func TestDecodeStepUpdate(t *testing.T) {
	tests := []struct {
		name    string
		step    FormStep
		payload string
		want    StepUpdate
		wantErr bool
	}{
		{name: "material", step: StepMaterial, payload: `{"material":"aluminum"}`, want: MaterialStep{MaterialID: "aluminum"}},
		{name: "coating", step: StepCoating, payload: `{"type":"premium","finish":"satin"}`, want: CoatingStep{TypeID: "premium", FinishID: "satin"}},
		{name: "quantity", step: StepQuantity, payload: `{"quantity":12}`, want: QuantityStep{Quantity: 12}},
		{name: "addons", step: StepAddons, payload: `{"addons":["uvProtection"]}`, want: AddonsStep{AddonIDs: []string{"uvProtection"}}},
		{name: "promo", step: StepPromo, payload: `{"promo_code":"EARLY"}`, want: PromoStep{Code: "EARLY"}},
		{name: "empty payload gives zero update", step: StepColor, payload: ``, want: ColorStep{}},
		{name: "unknown step", step: "payment", payload: `{}`, wantErr: true},
		{name: "malformed payload", step: StepQuantity, payload: `{"quantity":"many"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStepUpdate(tt.step, []byte(tt.payload))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStep)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeStepUpdate_NamesOffendingField(t *testing.T) {
	_, err := DecodeStepUpdate(StepQuantity, []byte(`{"quantity":"many"}`))

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepQuantity, stepErr.Step)
	assert.Equal(t, "quantity", stepErr.Field)
	assert.Equal(t, "must be int", stepErr.Message)

	_, err = DecodeStepUpdate(StepCoating, []byte(`{"type":`))
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "update", stepErr.Field)
	assert.Contains(t, stepErr.Message, "unexpected end of JSON input")
}

func TestDecodeStepUpdate_HugeDimensionIsRejectedByReduce(t *testing.T) {
	update, err := DecodeStepUpdate(StepDimensions, []byte(`{"length":1e1000000,"width":2,"height":1}`))
	require.NoError(t, err)

	_, err = Reduce(QuoteDraft{}, update)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "length", stepErr.Field)
	assert.Equal(t, model.ErrDimensionTooLarge.Error(), stepErr.Message)
}
