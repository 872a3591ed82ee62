package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

var errBadReference = errors.New("unsupported material reference")

// ResolveMaterialRef normalizes a stored material reference. Older documents keep a
// bare identifier (hex string or ObjectID), newer ones a populated {_id, name} document.
func ResolveMaterialRef(raw any) (model.MaterialRef, error) {
	switch v := raw.(type) {
	case bson.D:
		m := make(map[string]any, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return refFromMap(m)
	case bson.M:
		return refFromMap(v)
	case map[string]any:
		return refFromMap(v)
	default:
		id, err := resolveIdentifier(raw)
		if err != nil {
			return model.MaterialRef{}, err
		}
		return model.MaterialRef{ID: id}, nil
	}
}

func refFromMap(m map[string]any) (model.MaterialRef, error) {
	rawID, ok := m["_id"]
	if !ok {
		rawID = m["id"]
	}

	id, err := resolveIdentifier(rawID)
	if err != nil {
		return model.MaterialRef{}, err
	}

	name, _ := m["name"].(string)
	return model.MaterialRef{ID: id, Name: name}, nil
}

func resolveIdentifier(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%w: empty identifier", errBadReference)
		}
		return v, nil
	case bson.ObjectID:
		return v.Hex(), nil
	case nil:
		return "", fmt.Errorf("%w: missing identifier", errBadReference)
	default:
		return "", fmt.Errorf("%w: %T", errBadReference, raw)
	}
}

// EncodeMaterialRef keeps unpopulated references in their bare form.
func EncodeMaterialRef(ref model.MaterialRef) any {
	if ref.Name == "" {
		return identifierValue(ref.ID)
	}
	return bson.D{
		{Key: "_id", Value: identifierValue(ref.ID)},
		{Key: "name", Value: ref.Name},
	}
}

func identifierValue(id string) any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// identifierForms lists every stored shape an identifier can take.
func identifierForms(id string) []any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return []any{id, oid}
	}
	return []any{id}
}
