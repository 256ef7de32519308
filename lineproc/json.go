package lineproc

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/katalvlaran/packer/selector"
)

// ParseJSONLine parses one {"capacity":..,"items":[{"id":..,"weight":..,"cost":..}]}
// object. The same taxonomy as ParseLine applies: a bad capacity is
// ErrMalformedCapacity, anything wrong with the document or an item is
// ErrMalformedItem.
func ParseJSONLine(line string) (selector.Instance, error) {
	if !gjson.Valid(line) {
		return selector.Instance{}, fmt.Errorf("%w: invalid JSON", ErrMalformedItem)
	}
	doc := gjson.Parse(line)
	if !doc.IsObject() {
		return selector.Instance{}, fmt.Errorf("%w: line is not a JSON object", ErrMalformedItem)
	}

	capRes := doc.Get("capacity")
	if !isInteger(capRes) || capRes.Num <= 0 {
		return selector.Instance{}, fmt.Errorf("%w: %s", ErrMalformedCapacity, orMissing(capRes))
	}

	itemsRes := doc.Get("items")
	if itemsRes.Exists() && !itemsRes.IsArray() {
		return selector.Instance{}, fmt.Errorf("%w: items is not an array", ErrMalformedItem)
	}

	arr := itemsRes.Array()
	items := make([]selector.Item, 0, len(arr))
	for i, el := range arr {
		it, err := jsonItem(el)
		if err != nil {
			return selector.Instance{}, fmt.Errorf("%w: items[%d]: %s", ErrMalformedItem, i, err)
		}
		items = append(items, it)
	}

	return selector.Instance{Capacity: capRes.Num, Items: items}, nil
}

// maxExactInt is the largest integer every JSON number up to it represents
// exactly as a float64.
const maxExactInt = 1 << 53

func jsonItem(el gjson.Result) (selector.Item, error) {
	if !el.IsObject() {
		return selector.Item{}, fmt.Errorf("not an object: %s", el.Raw)
	}
	id, weight, cost := el.Get("id"), el.Get("weight"), el.Get("cost")
	if !isInteger(id) || id.Num < 0 {
		return selector.Item{}, fmt.Errorf("id %s", orMissing(id))
	}
	if id.Num > maxExactInt {
		return selector.Item{}, fmt.Errorf("id %s exceeds 2^53", id.Raw)
	}
	if weight.Type != gjson.Number || weight.Num < 0 {
		return selector.Item{}, fmt.Errorf("weight %s", orMissing(weight))
	}
	if !isInteger(cost) || cost.Num < 0 {
		return selector.Item{}, fmt.Errorf("cost %s", orMissing(cost))
	}
	if cost.Num > maxExactInt {
		return selector.Item{}, fmt.Errorf("cost %s exceeds 2^53", cost.Raw)
	}

	return selector.Item{ID: int(id.Int()), Weight: weight.Num, Cost: int(cost.Int())}, nil
}

// isInteger reports whether r is a JSON number without a fractional part.
func isInteger(r gjson.Result) bool {
	return r.Type == gjson.Number && r.Num == math.Trunc(r.Num) && !math.IsInf(r.Num, 0)
}

func orMissing(r gjson.Result) string {
	if !r.Exists() {
		return "missing"
	}

	return r.Raw
}
