package schema

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() []FieldSpec {
	return []FieldSpec{
		{Name: "phone", Kind: KindPhone, Nullable: true},
		{Name: "email", Kind: KindEmail, Nullable: true},
		{Name: "first_name", Kind: KindChar, Nullable: true},
		{Name: "last_name", Kind: KindChar, Nullable: true},
		{Name: "birthday", Kind: KindBirthday, Nullable: true},
		{Name: "gender", Kind: KindGender, Nullable: true},
	}
}

func TestDef_Validate_AccumulatesAllErrors(t *testing.T) {
	def := NewDef([]FieldSpec{
		{Name: "phone", Kind: KindPhone, Required: true},
		{Name: "email", Kind: KindEmail, Required: true},
		{Name: "gender", Kind: KindGender, Required: true},
	})

	values, errs := def.Validate(map[string]any{
		"phone": "123",
		"email": "no-at-sign",
	})

	require.Nil(t, values)
	require.Len(t, errs, 3)
	assert.True(t, errs.Has("phone", ErrKindInvalidFormat))
	assert.True(t, errs.Has("email", ErrKindInvalidFormat))
	assert.True(t, errs.Has("gender", ErrKindMissingField))
}

func TestDef_Validate_OrderIndependent(t *testing.T) {
	raw := map[string]any{
		"phone":  "123",
		"email":  "no-at-sign",
		"gender": 3,
	}

	fields := []FieldSpec{
		{Name: "phone", Kind: KindPhone, Required: true},
		{Name: "email", Kind: KindEmail, Required: true},
		{Name: "gender", Kind: KindGender, Required: true},
		{Name: "first_name", Kind: KindChar, Nullable: true},
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]FieldSpec, len(fields))
		copy(shuffled, fields)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		_, errs := NewDef(shuffled).Validate(raw)
		require.Len(t, errs, 3)
		assert.True(t, errs.Has("phone", ErrKindInvalidFormat))
		assert.True(t, errs.Has("email", ErrKindInvalidFormat))
		assert.True(t, errs.Has("gender", ErrKindInvalidFormat))
	}
}

func TestDef_Validate_CrossRule(t *testing.T) {
	rule := CrossRule{
		Name: "нужна хотя бы одна пара",
		Check: AnyOf(
			PairPresent("phone", "email"),
			PairPresent("first_name", "last_name"),
			PairPresent("gender", "birthday"),
		),
	}

	tests := []struct {
		name    string
		raw     map[string]any
		wantErr bool
	}{
		{
			name:    "only first name fails",
			raw:     map[string]any{"first_name": "a"},
			wantErr: true,
		},
		{
			name: "first and last name pass",
			raw:  map[string]any{"first_name": "a", "last_name": "b"},
		},
		{
			name: "phone and email pass",
			raw:  map[string]any{"phone": "79175002040", "email": "a@b"},
		},
		{
			name: "gender and birthday pass",
			raw:  map[string]any{"gender": 1, "birthday": "01.01.1990"},
		},
		{
			name:    "null does not count as present",
			raw:     map[string]any{"first_name": "a", "last_name": nil},
			wantErr: true,
		},
		{
			name:    "empty arguments fail",
			raw:     map[string]any{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, errs := NewDef(testFields(), rule).Validate(tt.raw)

			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, ErrKindCrossField, errs[0].Kind)
				assert.Contains(t, errs.Error(), rule.Name)
				return
			}

			require.Nil(t, errs)
			require.NotNil(t, values)
		})
	}
}

func TestDef_Validate_CrossRuleSkippedOnFieldErrors(t *testing.T) {
	rule := CrossRule{Name: "пара", Check: PairPresent("phone", "email")}

	_, errs := NewDef(testFields(), rule).Validate(map[string]any{
		"phone": "not-a-phone",
	})

	// Межполевое правило не проверяется, пока есть пополевые ошибки
	require.Len(t, errs, 1)
	assert.Equal(t, ErrKindInvalidFormat, errs[0].Kind)
	assert.Equal(t, "phone", errs[0].Field)
}

func TestDef_Validate_Values(t *testing.T) {
	values, errs := NewDef(testFields()).Validate(map[string]any{
		"phone":    "79175002040",
		"email":    "stupnikov@otus.ru",
		"gender":   0,
		"birthday": "01.01.1990",
	})
	require.Nil(t, errs)

	assert.Equal(t, "79175002040", values.String("phone"))
	assert.Equal(t, "stupnikov@otus.ru", values.String("email"))

	// gender=0 передан, но пуст для своего типа
	assert.True(t, values.Has("gender"))
	assert.False(t, values.NonEmpty("gender"))

	birthday, ok := values.Date("birthday")
	require.True(t, ok)
	assert.Equal(t, 1990, birthday.Year())

	assert.False(t, values.Has("first_name"))
	assert.False(t, values.NonEmpty("first_name"))
}

func TestNewDef_PanicsOnDuplicateName(t *testing.T) {
	assert.Panics(t, func() {
		NewDef([]FieldSpec{
			{Name: "phone", Kind: KindPhone},
			{Name: "phone", Kind: KindChar},
		})
	})
}
