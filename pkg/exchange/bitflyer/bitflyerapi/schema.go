package bitflyerapi

import (
	"github.com/valyala/fastjson"
)

// requireObject checks that body is a JSON object carrying every given field.
func requireObject(body []byte, fields ...string) error {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return newInvalidResponse(body, "malformed json: %v", err)
	}

	return requireFields(body, v, fields)
}

// requireArray checks that body is a JSON array whose elements carry every given field.
func requireArray(body []byte, fields ...string) error {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return newInvalidResponse(body, "malformed json: %v", err)
	}

	values, err := v.Array()
	if err != nil {
		return newInvalidResponse(body, "expecting json array, got %s", v.Type())
	}

	for _, value := range values {
		if err := requireFields(body, value, fields); err != nil {
			return err
		}
	}

	return nil
}

func requireFields(body []byte, v *fastjson.Value, fields []string) error {
	if v.Type() != fastjson.TypeObject {
		return newInvalidResponse(body, "expecting json object, got %s", v.Type())
	}

	for _, field := range fields {
		if !v.Exists(field) {
			return newInvalidResponse(body, "missing field %q", field)
		}
	}

	return nil
}

// ParseParentOrderPrices extracts the price of every parent order in the list.
// Entries without a numeric price are skipped instead of failing the whole list.
func ParseParentOrderPrices(body []byte) ([]float64, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, newInvalidResponse(body, "malformed json: %v", err)
	}

	values, err := v.Array()
	if err != nil {
		return nil, newInvalidResponse(body, "expecting json array, got %s", v.Type())
	}

	prices := make([]float64, 0, len(values))
	for _, value := range values {
		priceValue := value.Get("price")
		if priceValue == nil {
			continue
		}

		price, err := priceValue.Float64()
		if err != nil {
			continue
		}

		prices = append(prices, price)
	}

	return prices, nil
}
