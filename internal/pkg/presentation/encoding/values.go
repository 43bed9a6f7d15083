package encoding

import (
	"github.com/diwise/api-sos/internal/pkg/domain"
)

type measure struct {
	Unit  string   `json:"uom,omitempty"`
	Value *float64 `json:"value"`
}

type category struct {
	Codespace string `json:"codespace,omitempty"`
	Value     string `json:"value"`
}

type reference struct {
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

type level struct {
	From  *float64 `json:"from,omitempty"`
	To    *float64 `json:"to,omitempty"`
	Value any      `json:"value"`
}

func jsonValueEncoders() map[domain.ValueType]ValueEncoder {
	return map[domain.ValueType]ValueEncoder{
		domain.QuantityValue: func(o domain.Observation) (any, error) {
			if o.Value.Quantity == nil {
				return nil, nil
			}
			return measure{Unit: o.Value.Unit, Value: o.Value.Quantity}, nil
		},
		domain.CountValue: func(o domain.Observation) (any, error) {
			return nilOr(o.Value.Count), nil
		},
		domain.BooleanValue: func(o domain.Observation) (any, error) {
			return nilOr(o.Value.Boolean), nil
		},
		domain.TextValue: func(o domain.Observation) (any, error) {
			return nilOr(o.Value.Text), nil
		},
		domain.GeometryValue: func(o domain.Observation) (any, error) {
			return nilOr(o.Value.Geometry), nil
		},
		domain.CategoryValue: func(o domain.Observation) (any, error) {
			if o.Value.Text == nil {
				return nil, nil
			}
			c := category{Value: *o.Value.Text}
			if o.Value.Codespace != nil {
				c.Codespace = *o.Value.Codespace
			}
			return c, nil
		},
		domain.ReferencedValue: func(o domain.Observation) (any, error) {
			if o.Value.Href == nil {
				return nil, nil
			}
			r := reference{Href: *o.Value.Href}
			if o.Value.Title != nil {
				r.Title = *o.Value.Title
			}
			return r, nil
		},
		domain.ProfileValue: encodeProfile,
	}
}

func encodeProfile(o domain.Observation) (any, error) {
	encoders := jsonValueEncoders()
	levels := make([]level, 0, len(o.Children))

	for _, child := range o.Children {
		enc, ok := encoders[child.Value.Type]
		if !ok || child.Value.Type == domain.ProfileValue {
			enc = encoders[domain.QuantityValue]
		}

		v, err := enc(child)
		if err != nil {
			return nil, err
		}

		levels = append(levels, level{From: child.VerticalFrom, To: child.VerticalTo, Value: v})
	}

	return levels, nil
}

func nilOr[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
