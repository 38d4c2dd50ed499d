package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"email format": func(t *testing.T) {
			assert.True(t, IsValidEmail("user@example.com"))
			assert.True(t, IsValidEmail("a.b+c@sub.domain.org"))
			assert.False(t, IsValidEmail("not-an-email"))
			assert.False(t, IsValidEmail("user@"))
			assert.False(t, IsValidEmail("user@domain"))
			assert.False(t, IsValidEmail("user name@example.com"))
		},
		"us phone must be 10 digits": func(t *testing.T) {
			cleaned, err := ValidatePhone("phone", "(555) 123-4567", FORMAT_US)
			require.NoError(t, err)
			assert.Equal(t, "5551234567", cleaned)

			_, err = ValidatePhone("phone", "123-4567", FORMAT_US)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "US numbers must be 10 digits")
		},
		"international phone allows 10 to 15 digits": func(t *testing.T) {
			cleaned, err := ValidatePhone("phone", "+44 20 7946 0958 123", FORMAT_INTERNATIONAL)
			require.NoError(t, err)
			assert.Equal(t, "442079460958123", cleaned)

			_, err = ValidatePhone("phone", "+44 20 7946 0958 1234", FORMAT_INTERNATIONAL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "10-15 digits")
		},
		"ssn must be 9 digits": func(t *testing.T) {
			cleaned, err := ValidateSSN("ssn", "123-45-6789")
			require.NoError(t, err)
			assert.Equal(t, "123456789", cleaned)

			_, err = ValidateSSN("ssn", "123-45-678")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Must be 9 digits")
		},
		"email required option": func(t *testing.T) {
			assert.NoError(t, ValidateEmail("contact", "", false))
			err := ValidateEmail("contact", "", true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "required")
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestAutoSetDisplay(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"email field defaults display and obfuscate": func(t *testing.T) {
			field := Field{Field: "contact", Meta: FieldMeta{Interface: INTERFACE_EMAIL}}
			AutoSetDisplay(&field)
			assert.Equal(t, DISPLAY_EMAIL, field.Meta.Display)
			require.NotNil(t, field.Meta.DisplayOptions.Obfuscate)
			assert.False(t, *field.Meta.DisplayOptions.Obfuscate)
		},
		"phone field inherits format from interface options": func(t *testing.T) {
			field := Field{Field: "phone", Meta: FieldMeta{Interface: INTERFACE_PHONE, Options: FieldOptions{Format: FORMAT_INTERNATIONAL}}}
			AutoSetDisplay(&field)
			assert.Equal(t, DISPLAY_PHONE, field.Meta.Display)
			assert.Equal(t, FORMAT_INTERNATIONAL, field.Meta.DisplayOptions.Format)
		},
		"phone field with no options defaults to us": func(t *testing.T) {
			field := Field{Field: "phone", Meta: FieldMeta{Interface: INTERFACE_PHONE}}
			AutoSetDisplay(&field)
			assert.Equal(t, FORMAT_US, field.Meta.DisplayOptions.Format)
		},
		"ssn field defaults to masked": func(t *testing.T) {
			field := Field{Field: "ssn", Meta: FieldMeta{Interface: INTERFACE_SSN}}
			AutoSetDisplay(&field)
			assert.Equal(t, DISPLAY_SSN, field.Meta.Display)
			require.NotNil(t, field.Meta.DisplayOptions.Masked)
			assert.True(t, *field.Meta.DisplayOptions.Masked)
		},
		"configured display is left alone": func(t *testing.T) {
			field := Field{Field: "contact", Meta: FieldMeta{Interface: INTERFACE_EMAIL, Display: "raw"}}
			AutoSetDisplay(&field)
			assert.Equal(t, "raw", field.Meta.Display)
			assert.Nil(t, field.Meta.DisplayOptions.Obfuscate)
		},
	} {
		t.Run(scenario, fn)
	}
}

type fakeFieldLister struct {
	fields map[string][]Field
	reads  int
}

func (f *fakeFieldLister) ReadFields(ctx context.Context, collection string) ([]Field, error) {
	f.reads++
	return f.fields[collection], nil
}

func TestValidateItem(t *testing.T) {
	lister := &fakeFieldLister{fields: map[string][]Field{
		"clients": {
			{Field: "contact", Meta: FieldMeta{Interface: INTERFACE_EMAIL, Options: FieldOptions{Required: true}}},
			{Field: "phone", Meta: FieldMeta{Interface: INTERFACE_PHONE}},
			{Field: "ssn", Meta: FieldMeta{Interface: INTERFACE_SSN}},
			{Field: "notes", Meta: FieldMeta{}},
		},
	}}
	v := NewValidator(lister)
	ctx := context.Background()

	item := map[string]any{
		"contact": "user@example.com",
		"phone":   "(555) 123-4567",
		"ssn":     "123-45-6789",
		"notes":   "anything goes",
	}
	require.NoError(t, v.ValidateItem(ctx, "clients", item))
	// phone and ssn are normalized in place
	assert.Equal(t, "5551234567", item["phone"])
	assert.Equal(t, "123456789", item["ssn"])

	err := v.ValidateItem(ctx, "clients", map[string]any{"contact": "nope", "phone": "5551234567"})
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contact", verr.Field)

	err = v.ValidateItem(ctx, "clients", map[string]any{"phone": "5551234567"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email is required")

	// second call for the collection is served from the field cache
	reads := lister.reads
	_ = v.ValidateItem(ctx, "clients", map[string]any{"contact": "user@example.com"})
	assert.Equal(t, reads, lister.reads)

	v.InvalidateFields("clients")
	_ = v.ValidateItem(ctx, "clients", map[string]any{"contact": "user@example.com"})
	assert.Equal(t, reads+1, lister.reads)
}
