package dto

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/domain/model"
)

func TestQuoteInput_Validate(t *testing.T) {
	valid := func() QuoteInput {
		return QuoteInput{
			Material:   "steel",
			Dimensions: DimensionsInput{Length: decimal.NewFromInt(12), Unit: "cm"},
			Coating:    CoatingInput{Type: "standard", Finish: "glossy"},
			Color:      ColorInput{Type: "standard"},
			Quantity:   10,
			Addons:     []string{"extraCoating"},
			Contact:    ContactInput{Email: "ana@example.com"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*QuoteInput)
		wantField string
		wantRule  string
	}{
		{name: "valid", mutate: func(*QuoteInput) {}},
		{name: "incomplete selections pass", mutate: func(in *QuoteInput) { *in = QuoteInput{} }},
		{name: "bad unit", mutate: func(in *QuoteInput) { in.Dimensions.Unit = "feet" }, wantField: "dimensions.unit", wantRule: "oneof=inches cm"},
		{name: "negative length", mutate: func(in *QuoteInput) { in.Dimensions.Length = decimal.NewFromInt(-1) }, wantField: "dimensions.length", wantRule: "gte_zero"},
		{name: "huge exponent", mutate: func(in *QuoteInput) { in.Dimensions.Width = decimal.RequireFromString("1e1000000") }, wantField: "dimensions.width", wantRule: "max_dimension"},
		{name: "past the limit", mutate: func(in *QuoteInput) { in.Dimensions.Height = decimal.RequireFromString("10000.0001") }, wantField: "dimensions.height", wantRule: "max_dimension"},
		{name: "too precise", mutate: func(in *QuoteInput) { in.Dimensions.Length = decimal.RequireFromString("1e-40") }, wantField: "dimensions.length", wantRule: "max_places"},
		{name: "at the limit", mutate: func(in *QuoteInput) { in.Dimensions.Length = decimal.RequireFromString("1e4") }},
		{name: "negative quantity", mutate: func(in *QuoteInput) { in.Quantity = -1 }, wantField: "quantity", wantRule: "gte=0"},
		{name: "too many addons", mutate: func(in *QuoteInput) { in.Addons = make([]string, 21) }, wantField: "addons", wantRule: "max=20"},
		{name: "bad contact email", mutate: func(in *QuoteInput) { in.Contact.Email = "not-an-email" }, wantField: "contact.email", wantRule: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)

			err := Validate(in)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantRule, FieldErrors(err)[tt.wantField])
		})
	}
}

func TestQuoteInput_ToModel(t *testing.T) {
	in := QuoteInput{
		Material: " steel ",
		Coating:  CoatingInput{Type: "premium", Finish: "matte"},
		Color:    ColorInput{Type: "custom", CustomColor: " RAL 5015 "},
		Quantity: 3,
		Addons:   []string{"uvProtection"},
	}

	req := in.ToModel()

	assert.Equal(t, "steel", req.MaterialID)
	assert.Equal(t, model.UnitInches, req.Dimensions.Unit)
	assert.Equal(t, model.CoatingSelection{TypeID: "premium", FinishID: "matte"}, req.Coating)
	assert.Equal(t, "RAL 5015", req.Color.CustomColor)
	assert.Empty(t, req.Missing())
}

func TestNewQuoteInput_RoundTrips(t *testing.T) {
	in := QuoteInput{
		Material:   "steel",
		Dimensions: DimensionsInput{Length: decimal.NewFromInt(30), Width: decimal.NewFromInt(20), Height: decimal.NewFromInt(5), Unit: "cm"},
		Coating:    CoatingInput{Type: "premium", Finish: "matte"},
		Color:      ColorInput{Type: "custom", CustomColor: "RAL 5015"},
		Quantity:   4,
		Addons:     []string{"uvProtection"},
		PromoCode:  "EARLY",
		RushOrder:  true,
		Contact:    ContactInput{Name: "Ana", Email: "ana@example.com"},
	}

	assert.Equal(t, in, NewQuoteInput(in.ToModel()))
}

func TestDraftRequest_ValidatesHeldState(t *testing.T) {
	req := DraftRequest{
		Draft: DraftState{
			Request:   QuoteInput{Dimensions: DimensionsInput{Unit: "feet"}},
			Completed: []string{"material", "payment"},
		},
		Step:   "quantity",
		Update: []byte(`{"quantity":1}`),
	}

	fields := FieldErrors(Validate(req))

	assert.Equal(t, "oneof=inches cm", fields["draft.request.dimensions.unit"])
	assert.Contains(t, fields["draft.completed[1]"], "oneof")
}

func TestContactRequestInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        ContactRequestInput
		wantField string
	}{
		{
			name: "valid",
			in:   ContactRequestInput{Name: "Ana", Email: "ana@example.com", Message: "Please call me back", QuoteReference: "qt-lz3k9m2a-7qx"},
		},
		{
			name:      "missing name",
			in:        ContactRequestInput{Email: "ana@example.com", Message: "Please call me back"},
			wantField: "name",
		},
		{
			name:      "short message",
			in:        ContactRequestInput{Name: "Ana", Email: "ana@example.com", Message: "hi"},
			wantField: "message",
		},
		{
			name:      "malformed quote reference",
			in:        ContactRequestInput{Name: "Ana", Email: "ana@example.com", Message: "Please call me back", QuoteReference: "ORDER-1"},
			wantField: "quote_reference",
		},
		{
			name:      "message too long",
			in:        ContactRequestInput{Name: "Ana", Email: "ana@example.com", Message: strings.Repeat("a", 5001)},
			wantField: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FieldErrors(err), tt.wantField)
		})
	}
}

func TestDraftRequest_Validate(t *testing.T) {
	assert.NoError(t, Validate(DraftRequest{Step: "material", Update: []byte(`{"material":"steel"}`)}))

	err := Validate(DraftRequest{Step: "shipping", Update: []byte(`{}`)})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "step")
}

func TestStatusUpdateRequest_Validate(t *testing.T) {
	assert.NoError(t, Validate(StatusUpdateRequest{Status: "accepted"}))
	assert.Error(t, Validate(StatusUpdateRequest{Status: "submitted"}))
}

func TestLogQuery(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		err := Validate(LogQuery{Level: "debug"})
		require.Error(t, err)
		assert.Equal(t, "oneof=info warn error", FieldErrors(err)["level"])
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		assert.Error(t, Validate(LogQuery{UserID: "nope"}))
	})

	t.Run("converts to filter", func(t *testing.T) {
		q := LogQuery{PageQuery: PageQuery{Limit: 5, Skip: 10}, Level: "error", Action: "quote.submit"}
		f := q.ToFilter()
		assert.Equal(t, model.LogFilter{Level: "error", Action: "quote.submit", Limit: 5, Skip: 10}, f)
	})
}

func TestPageQuery_Normalized(t *testing.T) {
	assert.Equal(t, DefaultPageLimit, PageQuery{}.Normalized().Limit)
	assert.Equal(t, 7, PageQuery{Limit: 7}.Normalized().Limit)
	assert.Error(t, Validate(PageQuery{Limit: MaxPageLimit + 1}))
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	got := FieldErrors(assert.AnError)
	assert.Equal(t, map[string]string{"body": assert.AnError.Error()}, got)
}

func TestValidator_QuoteRefRegistered(t *testing.T) {
	v := Validator()
	require.NotPanics(t, func() { _ = v.Var("QT-LZ3K9M2A-7QX", "quote_ref") })

	assert.NoError(t, v.Var("qt-lz3k9m2a-7qx", "quote_ref"))
	assert.Error(t, v.Var("INV-2025-001", "quote_ref"))
}
