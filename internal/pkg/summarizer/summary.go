package summarizer

import (
	"encoding/json"
	"fmt"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"github.com/pkg/errors"
)

// parseSummary maps the model's JSON to Summary.
// Only invalid JSON fails. Missing or mistyped fields, or a document that is not
// an object, give empty lists.
func parseSummary(content string) (*api.Summary, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Wrap(err, "Can't parse summary JSON")
	}
	res := &api.Summary{KeyDecisions: []string{}, ActionItems: []api.ActionItem{}}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return res, nil
	}
	if items, ok := obj["key_decisions"].([]interface{}); ok {
		for _, d := range items {
			if s, ok := asString(d); ok {
				res.KeyDecisions = append(res.KeyDecisions, s)
			}
		}
	}
	if items, ok := obj["action_items"].([]interface{}); ok {
		for _, it := range items {
			if ai, ok := asActionItem(it); ok {
				res.ActionItems = append(res.ActionItems, ai)
			}
		}
	}
	return res, nil
}

func asActionItem(v interface{}) (api.ActionItem, bool) {
	res := api.ActionItem{Owner: api.UnassignedOwner}
	switch t := v.(type) {
	case string:
		res.Task = t
	case map[string]interface{}:
		s, ok := asString(t["task"])
		if !ok {
			return res, false
		}
		res.Task = s
		if o, ok := asString(t["owner"]); ok && o != "" {
			res.Owner = o
		}
	default:
		return res, false
	}
	return res, true
}

func asString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64, bool:
		return fmt.Sprint(t), true
	}
	return "", false
}
