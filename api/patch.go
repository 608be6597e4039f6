package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// decodePatch parses an RFC 6902 document.
func decodePatch(body []byte) (jsonpatch.Patch, error) {
	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return patch, nil
}

// applyPatch applies patch to the JSON form of doc and decodes the result
// back into the update shape. Members the update shape does not declare are
// rejected.
func applyPatch(doc CommandUpdateDto, patch jsonpatch.Patch) (CommandUpdateDto, error) {
	original, err := json.Marshal(doc)
	if err != nil {
		return CommandUpdateDto{}, fmt.Errorf("encode document: %w", err)
	}

	patched, err := patch.Apply(original)
	if err != nil {
		return CommandUpdateDto{}, fmt.Errorf("apply patch: %w", err)
	}

	var out CommandUpdateDto
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return CommandUpdateDto{}, fmt.Errorf("patched document: %w", err)
	}
	return out, nil
}
