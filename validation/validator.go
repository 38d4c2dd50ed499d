package validation

import (
	"context"
	"fmt"
	"time"

	c "github.com/patrickmn/go-cache"

	"github.com/flowmap/flowmap/logger"
	"go.uber.org/zap"
)

const INTERFACE_EMAIL = "email-input"
const INTERFACE_PHONE = "phone"
const INTERFACE_SSN = "ssn"

const DISPLAY_EMAIL = "email-display"
const DISPLAY_PHONE = "phone-display"
const DISPLAY_SSN = "ssn-display"

const fieldCacheTTL = time.Minute

// FieldOptions are the interface options an admin configures on a field.
type FieldOptions struct {
	Required  bool   `json:"required,omitempty"`
	Format    string `json:"format,omitempty"`
	Obfuscate *bool  `json:"obfuscate,omitempty"`
	Masked    *bool  `json:"masked,omitempty"`
}

type FieldMeta struct {
	Interface      string       `json:"interface,omitempty"`
	Display        string       `json:"display,omitempty"`
	Options        FieldOptions `json:"options,omitempty"`
	DisplayOptions FieldOptions `json:"display_options,omitempty"`
}

// Field is one column definition of a host collection.
type Field struct {
	Field string    `json:"field"`
	Meta  FieldMeta `json:"meta"`
}

// FieldLister fetches the field definitions of a collection from the host.
type FieldLister interface {
	ReadFields(ctx context.Context, collection string) ([]Field, error)
}

// AutoSetDisplay fills in the display and display options of a field
// definition when its interface is one of the validated kinds and the
// admin left them unset.
func AutoSetDisplay(field *Field) {
	switch field.Meta.Interface {
	case INTERFACE_EMAIL:
		if field.Meta.Display == "" {
			field.Meta.Display = DISPLAY_EMAIL
		}
		if field.Meta.Display == DISPLAY_EMAIL && field.Meta.DisplayOptions.Obfuscate == nil {
			obfuscate := false
			if field.Meta.Options.Obfuscate != nil {
				obfuscate = *field.Meta.Options.Obfuscate
			}
			field.Meta.DisplayOptions.Obfuscate = &obfuscate
		}
	case INTERFACE_PHONE:
		if field.Meta.Display == "" {
			field.Meta.Display = DISPLAY_PHONE
		}
		if field.Meta.Display == DISPLAY_PHONE && field.Meta.DisplayOptions.Format == "" {
			format := field.Meta.Options.Format
			if format == "" {
				format = FORMAT_US
			}
			field.Meta.DisplayOptions.Format = format
		}
	case INTERFACE_SSN:
		if field.Meta.Display == "" {
			field.Meta.Display = DISPLAY_SSN
		}
		if field.Meta.Display == DISPLAY_SSN && field.Meta.DisplayOptions.Masked == nil {
			masked := true
			if field.Meta.Options.Masked != nil {
				masked = *field.Meta.Options.Masked
			}
			field.Meta.DisplayOptions.Masked = &masked
		}
	}
}

// Validator checks item payloads against the email, phone and SSN field
// rules of their collection. Field definitions are cached per collection
// for a minute to keep host lookups off the write path.
type Validator struct {
	fields FieldLister
	cache  *c.Cache
}

func NewValidator(fields FieldLister) *Validator {
	return &Validator{
		fields: fields,
		cache:  c.New(fieldCacheTTL, 2*fieldCacheTTL),
	}
}

func (v *Validator) collectionFields(ctx context.Context, collection string) ([]Field, error) {
	if cached, ok := v.cache.Get(collection); ok {
		return cached.([]Field), nil
	}
	fields, err := v.fields.ReadFields(ctx, collection)
	if err != nil {
		logger.Error("could not read collection fields", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	if len(fields) > 0 {
		v.cache.SetDefault(collection, fields)
	}
	return fields, nil
}

// InvalidateFields drops a collection's cached field definitions, for use
// after the collection schema changes.
func (v *Validator) InvalidateFields(collection string) {
	v.cache.Delete(collection)
}

// ValidateItem checks the item's validated fields and normalizes phone
// and SSN values to their digits-only form in place. The first failing
// field aborts the check.
func (v *Validator) ValidateItem(ctx context.Context, collection string, item map[string]any) error {
	fields, err := v.collectionFields(ctx, collection)
	if err != nil {
		return err
	}

	for _, field := range fields {
		raw, present := item[field.Field]
		value := stringValue(raw)

		switch field.Meta.Interface {
		case INTERFACE_EMAIL:
			if err := ValidateEmail(field.Field, value, field.Meta.Options.Required); err != nil {
				return err
			}
		case INTERFACE_PHONE:
			if !present || value == "" {
				continue
			}
			cleaned, err := ValidatePhone(field.Field, value, field.Meta.Options.Format)
			if err != nil {
				return err
			}
			item[field.Field] = cleaned
		case INTERFACE_SSN:
			if !present || value == "" {
				continue
			}
			cleaned, err := ValidateSSN(field.Field, value)
			if err != nil {
				return err
			}
			item[field.Field] = cleaned
		}
	}
	return nil
}

func stringValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
